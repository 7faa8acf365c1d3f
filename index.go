package main

import "net/http"

// statusHTML is what a browser (or a platform liveness probe) sees on a
// plain GET of the relay root. The websocket endpoint lives on the same
// path.
const statusHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>Signaling Relay</title>
<style>
body{font-family:system-ui,sans-serif;background:#191919;color:#e5e5e5;
display:flex;align-items:center;justify-content:center;min-height:100vh;margin:0}
main{text-align:center}
h1{font-size:1.2rem;font-weight:600}
p{color:#737373;font-size:.9rem}
</style>
</head>
<body>
<main>
<h1>Signaling relay is running.</h1>
<p>Connect over WebSocket on this path to exchange session envelopes.</p>
</main>
</body>
</html>`

func serveStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(statusHTML))
}
