package reload

import (
	"net/http"
	"strings"
)

// clientScript builds the snippet appended to served HTML. It reconnects
// the page to the reload endpoint and refreshes on any message.
func clientScript(endpoint string) []byte {
	var b strings.Builder
	b.WriteString(`<script>(function(){var p=location.protocol==="https:"?"wss://":"ws://";`)
	b.WriteString(`var ws=new WebSocket(p+location.host+"`)
	b.WriteString(endpoint)
	b.WriteString(`");ws.onmessage=function(){location.reload();};})();</script>`)
	return []byte(b.String())
}

// injectWriter appends the client script to text/html responses. The
// Content-Length header is dropped for injected responses because the body
// grows past what the inner handler declared.
type injectWriter struct {
	http.ResponseWriter
	script      []byte
	wroteHeader bool
	injecting   bool
}

func (w *injectWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		ct := w.Header().Get("Content-Type")
		if status == http.StatusOK && strings.HasPrefix(ct, "text/html") {
			w.injecting = true
			w.Header().Del("Content-Length")
		}
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *injectWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// finish appends the script once the inner handler is done.
func (w *injectWriter) finish() {
	if w.injecting {
		_, _ = w.ResponseWriter.Write(w.script)
	}
}
