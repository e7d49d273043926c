package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetPanel serves the built-in dev panel. It is a single self-contained page
// so the tracer stays useful without a frontend build step.
func (h *Handlers) GetPanel(c *gin.Context) {
	html := `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Message Tracer</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
            background: #0a0a0a;
            color: #e0e0e0;
            padding: 20px;
        }
        .container { max-width: 1100px; margin: 0 auto; }
        h1 { font-size: 1.6rem; margin-bottom: 6px; color: #7dd3fc; }
        .subtitle { color: #888; margin-bottom: 24px; }
        .cards { display: grid; grid-template-columns: repeat(auto-fit, minmax(240px, 1fr)); gap: 16px; margin-bottom: 24px; }
        .card { background: #1a1a1a; border: 1px solid #333; border-radius: 10px; padding: 16px; }
        .card h2 { font-size: 1rem; color: #7dd3fc; margin-bottom: 12px; }
        .metric { display: flex; justify-content: space-between; padding: 6px 0; border-bottom: 1px solid #2a2a2a; }
        .metric:last-child { border-bottom: none; }
        .metric span:first-child { color: #999; }
        .metric span:last-child { font-family: 'Courier New', monospace; color: #fff; }
        table { width: 100%; border-collapse: collapse; background: #1a1a1a; border-radius: 10px; overflow: hidden; }
        th, td { text-align: left; padding: 10px 14px; border-bottom: 1px solid #2a2a2a; }
        th { color: #7dd3fc; font-size: 0.85rem; text-transform: uppercase; }
        td a { color: #7dd3fc; text-decoration: none; margin-right: 12px; }
        td a:hover { text-decoration: underline; }
        .empty { color: #666; text-align: center; padding: 24px; }
        .links a { display: inline-block; margin: 0 12px 20px 0; color: #7dd3fc; text-decoration: none; font-size: 0.9rem; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Message Tracer</h1>
        <p class="subtitle">Live call chains recorded from the message bus</p>

        <div class="links">
            <a href="/status">Status JSON</a>
            <a href="/stats">Stats JSON</a>
            <a href="/metrics">Prometheus Metrics</a>
            <a href="/health">Health</a>
        </div>

        <div class="cards">
            <div class="card">
                <h2>Store</h2>
                <div id="store-card"><p class="empty">Loading...</p></div>
            </div>
            <div class="card">
                <h2>Requests</h2>
                <div id="summary-card"><p class="empty">Loading...</p></div>
            </div>
        </div>

        <table>
            <thead><tr><th>Chain</th><th>Inspect</th></tr></thead>
            <tbody id="chains-body">
                <tr><td colspan="2" class="empty">Loading...</td></tr>
            </tbody>
        </table>
    </div>

    <script>
        function metricRow(label, value) {
            return '<div class="metric"><span>' + label + '</span><span>' + value + '</span></div>';
        }

        function loadStatus() {
            fetch('/status').then(function(r) { return r.json(); }).then(function(data) {
                var store = data.store || {};
                document.getElementById('store-card').innerHTML =
                    metricRow('Messages', store.totalMessages || 0) +
                    metricRow('Capacity', store.maxTraceSize || 0) +
                    metricRow('Chains', store.uniqueChains || 0);

                var s = data.summary || {};
                document.getElementById('summary-card').innerHTML =
                    metricRow('Total', s.totalRequests || 0) +
                    metricRow('Errors', s.totalErrors || 0) +
                    metricRow('Avg ms', (s.averageLatencyMs || 0).toFixed(2)) +
                    metricRow('Uptime s', (s.uptimeSeconds || 0).toFixed(0));
            });
        }

        function loadChains() {
            fetch('/chains').then(function(r) { return r.json(); }).then(function(data) {
                var body = document.getElementById('chains-body');
                var chains = data.chains || [];
                if (chains.length === 0) {
                    body.innerHTML = '<tr><td colspan="2" class="empty">No chains recorded yet</td></tr>';
                    return;
                }
                body.innerHTML = chains.map(function(id) {
                    var enc = encodeURIComponent(id);
                    return '<tr><td>' + id + '</td><td>' +
                        '<a href="/chains/' + enc + '/tree">tree</a>' +
                        '<a href="/chains/' + enc + '/report">report</a></td></tr>';
                }).join('');
            });
        }

        loadStatus();
        loadChains();
        setInterval(loadStatus, 5000);
        setInterval(loadChains, 5000);
    </script>
</body>
</html>`

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, html)
}
