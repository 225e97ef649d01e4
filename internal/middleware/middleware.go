package middleware

import (
	"net/http"
	"strconv"

	"github.com/akandula/DocChatAPI/internal/handlers"
	"github.com/akandula/DocChatAPI/internal/metrics"
	"github.com/akandula/DocChatAPI/pkg/logx"
)

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *logx.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorMessage string
}

var HealthHandler = Wrap(handlers.HealthHandler)
var CreateSessionHandler = Wrap(handlers.CreateSessionHandler)
var ProcessDocumentsHandler = Wrap(handlers.ProcessDocumentsHandler)
var AskHandler = Wrap(handlers.AskHandler)
var HistoryHandler = Wrap(handlers.HistoryHandler)
var DeleteSessionHandler = Wrap(handlers.DeleteSessionHandler)

func Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &metrics.HttpStatusRecorder{ResponseWriter: w, Status: 200} //metrics
		re := processRequest(requestResponseStruct{req: r, writer: rec})

		if re.badRequest.isBadRequest {
			return
		}
		next(rec, re.req)

		metrics.HttpRequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rec.Status)).Inc() //metrics
	}
}

func processRequest(re requestResponseStruct) requestResponseStruct {
	re.logger = logx.NewLogger("middleware")
	re.logger.Debug("New request received")

	re = injectTrace(re)
	if re.badRequest.isBadRequest {
		handleBadRequest(re)
		return re
	}
	re = rateLimiter(re)
	if re.badRequest.isBadRequest {
		handleBadRequest(re)
		return re
	}
	return re
}
