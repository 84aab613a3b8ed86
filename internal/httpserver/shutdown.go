package httpserver

import "time"

// ShutdownTimeout bounds graceful shutdown. In-flight summarize requests get this long to finish.
var ShutdownTimeout = 30 * time.Second
