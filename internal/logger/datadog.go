package logger

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV2"
)

const (
	dataDogQueueSize      = 1024
	dataDogDefaultTimeout = 5 * time.Second
	dataDogSource         = "go"
)

// logSubmitter is the part of datadogV2.LogsApi used by DataDogWriter.
type logSubmitter interface {
	SubmitLog(
		ctx context.Context,
		body []datadogV2.HTTPLogItem,
		o ...datadogV2.SubmitLogOptionalParameters,
	) (interface{}, *http.Response, error)
}

// DataDogWriter ships log lines to the datadog logs intake.
// Lines are queued and submitted by a single goroutine; when the queue is full new lines are dropped.
type DataDogWriter struct {
	api      logSubmitter
	ctx      context.Context
	queue    chan []byte
	timeout  time.Duration
	service  string
	hostname string
	tags     string
}

// NewDataDogWriter creates a DataDogWriter for the given log config and starts its sender.
func NewDataDogWriter(cfg Log) (*DataDogWriter, error) {
	if cfg.DataDog.APIKey == "" {
		return nil, ErrDataDogAPIKeyIsEmpty
	}

	ctx := context.WithValue(
		context.Background(),
		datadog.ContextAPIKeys,
		map[string]datadog.APIKey{"apiKeyAuth": {Key: cfg.DataDog.APIKey}},
	)

	if cfg.DataDog.Site != "" {
		ctx = context.WithValue(ctx, datadog.ContextServerVariables, map[string]string{"site": cfg.DataDog.Site})
	}

	client := datadog.NewAPIClient(datadog.NewConfiguration())

	return newDataDogWriter(ctx, datadogV2.NewLogsApi(client), cfg), nil
}

func newDataDogWriter(ctx context.Context, api logSubmitter, cfg Log) *DataDogWriter {
	hostname, _ := os.Hostname()

	service := cfg.DataDog.ServiceName
	if service == "" {
		service = cfg.ServiceName
	}

	timeout := cfg.DataDog.Timeout
	if timeout <= 0 {
		timeout = dataDogDefaultTimeout
	}

	w := &DataDogWriter{
		api:      api,
		ctx:      ctx,
		queue:    make(chan []byte, dataDogQueueSize),
		timeout:  timeout,
		service:  service,
		hostname: hostname,
		tags:     cfg.DataDog.Tags,
	}

	go w.run()

	return w
}

// Write implements io.Writer.
func (w *DataDogWriter) Write(p []byte) (int, error) {
	line := make([]byte, len(p))
	copy(line, p)

	select {
	case w.queue <- line:
	default:
		// queue full, drop the line rather than block the caller
	}

	return len(p), nil
}

func (w *DataDogWriter) run() {
	for line := range w.queue {
		w.submit(line)
	}
}

func (w *DataDogWriter) submit(line []byte) {
	ctx, cancel := context.WithTimeout(w.ctx, w.timeout)
	defer cancel()

	item := datadogV2.HTTPLogItem{
		Ddsource: datadog.PtrString(dataDogSource),
		Hostname: datadog.PtrString(w.hostname),
		Message:  string(trimNewline(line)),
		Service:  datadog.PtrString(w.service),
	}

	if w.tags != "" {
		item.Ddtags = datadog.PtrString(w.tags)
	}

	if _, _, err := w.api.SubmitLog(ctx, []datadogV2.HTTPLogItem{item}); err != nil {
		reportWriteError(err)
	}
}

func trimNewline(p []byte) []byte {
	for len(p) > 0 && (p[len(p)-1] == '\n' || p[len(p)-1] == '\r') {
		p = p[:len(p)-1]
	}

	return p
}
