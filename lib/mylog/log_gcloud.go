package mylog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/MarcGrol/flashcart/lib/mycontext"
)

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") != "" {
		New = newCloudLogger
		// Cloud Logging adds its own timestamp and only parses lines without a prefix as JSON
		log.SetFlags(0)
	}
}

type cloudLogger struct {
	componentName string
}

func newCloudLogger(componentName string) Logger {
	return cloudLogger{
		componentName: componentName,
	}
}

func (l cloudLogger) Log(ctx context.Context, traceLabel string, severity Severity, format string, a ...interface{}) {
	// scheduler ticks run without a request and therefore without trace
	trace, _ := ctx.Value(mycontext.CtxTraceContext{}).(string)

	labels := map[string]string{"component": l.componentName}
	if traceLabel != "" {
		labels["aggregate"] = traceLabel
	}

	log.Println(cloudEntry{
		Labels:   labels,
		Trace:    trace,
		Severity: string(severity),
		Message:  fmt.Sprintf(format, a...),
	}.String())
}

type cloudEntry struct {
	Labels   map[string]string `json:"logging.googleapis.com/labels,omitempty"`
	Trace    string            `json:"logging.googleapis.com/trace,omitempty"`
	Severity string            `json:"severity,omitempty"`
	Message  string            `json:"message"`
}

func (e cloudEntry) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		log.Printf("error marshalling log record: %v", err)
	}

	return string(out)
}
