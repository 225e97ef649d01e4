package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akandula/DocChatAPI/internal/config"
	"github.com/akandula/DocChatAPI/pkg/logx"
)

func TestInjectTrace(t *testing.T) {
	t.Run("generates a trace id and stores it under the typed key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/sessions", nil)

		re := injectTrace(requestResponseStruct{req: req, logger: logx.NewLogger("middleware")})

		if re.badRequest.isBadRequest {
			t.Fatalf("Expected request to pass, got bad request %d", re.badRequest.httpCode)
		}
		trace, ok := re.req.Context().Value(config.TRACE_ID_KEY).(string)
		if !ok || trace == "" {
			t.Fatalf("Expected a trace id in the request context, got %v", re.req.Context().Value(config.TRACE_ID_KEY))
		}
		if got := re.req.Header.Get("X-Trace-Id"); got != trace {
			t.Errorf("Expected header trace %q to match context trace %q", got, trace)
		}
		if re.req.Context().Value("traceId") != nil {
			t.Errorf("Expected the bare string key to miss, got %v", re.req.Context().Value("traceId"))
		}
	})

	t.Run("keeps the caller supplied trace id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/sessions", nil)
		req.Header.Set("X-Trace-Id", "caller-trace")

		re := injectTrace(requestResponseStruct{req: req, logger: logx.NewLogger("middleware")})

		if trace := re.req.Context().Value(config.TRACE_ID_KEY); trace != "caller-trace" {
			t.Errorf("Expected caller trace id to survive, got %v", trace)
		}
	})
}
