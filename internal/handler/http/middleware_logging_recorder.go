package http

import "net/http"

// accessRecorder wraps a [http.ResponseWriter] for withLogging and remembers
// the status and the number of body bytes sent.
type accessRecorder struct {
	http.ResponseWriter

	status int
	size   int
}

func (rec *accessRecorder) WriteHeader(statusCode int) {
	if rec.status != 0 {
		return
	}
	rec.status = statusCode
	rec.ResponseWriter.WriteHeader(statusCode)
}

func (rec *accessRecorder) Write(b []byte) (int, error) {
	if rec.status == 0 {
		rec.WriteHeader(http.StatusOK)
	}
	n, err := rec.ResponseWriter.Write(b)
	rec.size += n
	return n, err
}

// Flush forwards to the wrapped writer when it supports flushing.
func (rec *accessRecorder) Flush() {
	if f, ok := rec.ResponseWriter.(http.Flusher); ok {
		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		f.Flush()
	}
}

// Unwrap lets [http.ResponseController] reach the underlying writer.
func (rec *accessRecorder) Unwrap() http.ResponseWriter {
	return rec.ResponseWriter
}

// Status returns the status sent to the client. A handler that wrote nothing
// still produced a 200.
func (rec *accessRecorder) Status() int {
	if rec.status == 0 {
		return http.StatusOK
	}
	return rec.status
}
