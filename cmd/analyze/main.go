package main

// Run a resume analysis from the command line:
//   go run ./cmd/analyze -resume ./resume.pdf -jd ./job.txt

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"resume-optimizer/internal/analyses"
	"resume-optimizer/internal/extract"
	"resume-optimizer/internal/llm"
	"resume-optimizer/internal/shared/config"
	"resume-optimizer/resume/parse"
)

func main() {
	cfg := config.Load()

	resumePath := flag.String("resume", "", "Path to resume file (pdf, doc, docx or txt)")
	jdPath := flag.String("jd", "", "Path to job description file (optional)")
	outPath := flag.String("out", "", "Path to write raw JSON output (optional)")
	provider := flag.String("provider", cfg.LLMProvider, "Analyzer provider (heuristic or openai)")
	model := flag.String("model", cfg.LLMModel, "LLM model (openai provider only)")
	flag.Parse()

	if strings.TrimSpace(*resumePath) == "" {
		exitErr("resume path is required")
	}

	fileName := filepath.Base(*resumePath)
	format, err := extract.DetectFormat(fileName)
	if err != nil {
		exitErr(err.Error())
	}

	resumeBytes, err := os.ReadFile(*resumePath)
	if err != nil {
		exitErr(fmt.Sprintf("read resume: %v", err))
	}

	ctx := context.Background()
	resumeText, err := extract.ExtractTextFromBytes(ctx, resumeBytes, format)
	if err != nil {
		exitErr(fmt.Sprintf("extract resume text: %v", err))
	}

	jobDescription := ""
	if strings.TrimSpace(*jdPath) != "" {
		jdBytes, err := os.ReadFile(*jdPath)
		if err != nil {
			exitErr(fmt.Sprintf("read job description: %v", err))
		}
		jobDescription = string(jdBytes)
	}

	analyzer, err := buildAnalyzer(*provider, *model)
	if err != nil {
		exitErr(err.Error())
	}

	parsed := parse.New().Parse(resumeText)
	result, err := analyzer.Analyze(ctx, parsed, jobDescription)
	if err != nil {
		exitErr(fmt.Sprintf("analyze: %v", err))
	}

	pretty, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		exitErr(fmt.Sprintf("format json: %v", err))
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, pretty, 0o644); err != nil {
			exitErr(fmt.Sprintf("write output: %v", err))
		}
	}

	fmt.Println(string(pretty))
}

func buildAnalyzer(provider, model string) (analyses.Analyzer, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", "heuristic":
		return &analyses.KeywordAnalyzer{}, nil
	case "openai":
		client, err := llm.NewHTTPClient(os.Getenv("OPENAI_API_KEY"), model, os.Getenv("LLM_BASE_URL"), 120*time.Second)
		if err != nil {
			return nil, err
		}
		return &analyses.LLMAnalyzer{Client: client}, nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

func exitErr(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
