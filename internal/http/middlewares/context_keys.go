package middlewares

// Keys stashed on the gin context. Gin wants plain strings here.
const (
	CtxRequestID = "request_id"
)
