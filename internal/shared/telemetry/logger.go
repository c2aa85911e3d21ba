package telemetry

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

var out io.Writer = os.Stdout

// SetOutput redirects log lines, returning the previous writer. Tests use
// this to capture output.
func SetOutput(w io.Writer) io.Writer {
	prev := out
	out = w
	return prev
}

// Info writes an info-level JSON log line with the given fields.
func Info(msg string, fields map[string]any) {
	emit("info", msg, fields)
}

// Error writes an error-level JSON log line with the given fields.
func Error(msg string, fields map[string]any) {
	emit("error", msg, fields)
}

func emit(level, msg string, fields map[string]any) {
	entry := make(map[string]any, len(fields)+3)
	entry["ts"] = time.Now().UTC().Format(time.RFC3339)
	entry["level"] = level
	entry["msg"] = msg
	for k, v := range fields {
		entry[k] = v
	}

	data, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(out, `{"ts":"%s","level":"error","msg":"logger marshal failed","err":%q}`+"\n",
			time.Now().UTC().Format(time.RFC3339), err.Error())
		return
	}
	fmt.Fprintln(out, string(data))
}
