package main

// Render a sample resume to PDF and DOCX for eyeballing:
//   go run ./cmd/renderdemo -out ./out

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"resume-optimizer/resume/model"
	"resume-optimizer/resume/render"
	"resume-optimizer/resume/template"
)

func main() {
	outDir := flag.String("out", "./out", "output directory for generated documents")
	templateID := flag.String("template", template.DefaultTemplateID, "template id")
	variant := flag.String("variant", "", "template variant (tech_saas, industrial, leadership, general)")
	flag.Parse()

	resume := sampleResume()
	renderer := render.New()
	overrides := template.Overrides{Variant: *variant}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir failed: %v\n", err)
		os.Exit(1)
	}

	for _, format := range []render.Format{render.FormatPDF, render.FormatDOCX} {
		doc, err := renderer.Render(resume, format, *templateID, overrides)
		if err != nil {
			fmt.Fprintf(os.Stderr, "render %s failed: %v\n", format, err)
			os.Exit(1)
		}
		outPath := filepath.Join(*outDir, "sample_resume"+doc.Ext)
		if err := os.WriteFile(outPath, doc.Data, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
			os.Exit(1)
		}
		if err := validateDocument(*doc); err != nil {
			fmt.Fprintf(os.Stderr, "validation failed for %s: %v\n", outPath, err)
			os.Exit(1)
		}
		fmt.Printf("OK: wrote %s (%d bytes)\n", outPath, len(doc.Data))
	}

	modelPath := filepath.Join(*outDir, "sample_resume_model.json")
	payload, err := json.MarshalIndent(resume, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal failed: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(modelPath, payload, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("OK: wrote %s\n", modelPath)
}

func sampleResume() model.ParsedResume {
	return model.ParsedResume{
		Name:     "Jordan Lee",
		Title:    "Senior Backend Engineer",
		Email:    "jordan.lee@example.com",
		Phone:    "555-010-0102",
		Location: "Austin, TX",
		Summary:  "Backend engineer with 8+ years of experience building resilient APIs and data services. Led platform modernization initiatives spanning cloud migration and observability adoption.",
		Experience: []model.Experience{
			{
				Title:   "Senior Backend Engineer",
				Company: "Acme Logistics",
				Period:  "2021 - Present",
				Bullets: []string{
					"Designed a routing service that reduced shipment latency by 18%.",
					"Implemented distributed tracing to cut incident triage time by 35%.",
				},
			},
			{
				Title:   "Backend Engineer",
				Company: "Blue Harbor Systems",
				Period:  "2018 - 2021",
				Bullets: []string{
					"Built event-driven ingestion pipelines for compliance data feeds.",
				},
			},
		},
		Education: []model.Education{
			{Degree: "B.S. Computer Science", School: "University of Texas", Year: "2016"},
		},
		Skills: []string{
			"Go", "Java", "PostgreSQL", "Redis", "AWS", "Docker",
			"Kubernetes", "Terraform", "Leadership",
		},
		Certifications: []string{"AWS Certified Solutions Architect"},
	}
}

// validateDocument sanity-checks the rendered bytes so a broken layout
// change fails loudly during the demo instead of inside a viewer.
func validateDocument(doc render.Document) error {
	switch doc.Format {
	case render.FormatPDF:
		if !bytes.HasPrefix(doc.Data, []byte("%PDF-")) {
			return fmt.Errorf("missing PDF header")
		}
		return nil
	case render.FormatDOCX:
		return validateDocx(doc.Data)
	default:
		return fmt.Errorf("unknown format %q", doc.Format)
	}
}

func validateDocx(data []byte) error {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return err
	}
	for _, file := range reader.File {
		if strings.ReplaceAll(file.Name, "\\", "/") != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return err
		}
		defer rc.Close()
		content := new(bytes.Buffer)
		if _, err := content.ReadFrom(rc); err != nil {
			return err
		}
		if !strings.Contains(content.String(), "Jordan Lee") {
			return fmt.Errorf("document.xml missing resume content")
		}
		return nil
	}
	return fmt.Errorf("document.xml not found in docx")
}
