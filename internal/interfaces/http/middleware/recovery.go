package middleware

import (
	stderrors "errors"
	"net"
	"net/http/httputil"
	"os"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/shared/constants"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// Recovery turns a panic into a generic 500 response.
func Recovery(log logger.Interface) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		if isBrokenConnection(recovered) {
			log.Warnw("connection broken during request",
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"error", recovered)
			c.Abort()
			return
		}

		log.Errorw("panic recovered",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"headers", redactedHeaders(c),
			"error", recovered,
			"stack", string(debug.Stack()))

		abortWithError(c, errors.NewInternalError(constants.ErrMsgInternalServerError))
	})
}

func redactedHeaders(c *gin.Context) []string {
	dump, _ := httputil.DumpRequest(c.Request, false)
	headers := strings.Split(string(dump), "\r\n")
	for i, header := range headers {
		name, _, found := strings.Cut(header, ":")
		if !found {
			continue
		}
		if strings.EqualFold(name, constants.HeaderAuthorization) || strings.EqualFold(name, constants.HeaderInternalToken) {
			headers[i] = name + ": *"
		}
	}
	return headers
}

func isBrokenConnection(recovered any) bool {
	err, ok := recovered.(error)
	if !ok {
		return false
	}
	var opErr *net.OpError
	if !stderrors.As(err, &opErr) {
		return false
	}
	var sysErr *os.SyscallError
	if !stderrors.As(opErr.Err, &sysErr) {
		return false
	}
	msg := strings.ToLower(sysErr.Error())
	return strings.Contains(msg, "broken pipe") || strings.Contains(msg, "connection reset by peer")
}
