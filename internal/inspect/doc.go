// Package inspect serves an HTTP view of a running app store.
//
// Routes:
//
//	GET  /state               current snapshot
//	PUT  /viewport            {"width": 375}
//	GET  /locale              active locale and options
//	PUT  /locale              {"locale": "en"}
//	POST /reload?delay=300ms  reload pulse
//	POST /drawer/open         open the theme drawer
//	POST /drawer/close        close the theme drawer
//	POST /sider/toggle        toggle sider collapse
//	POST /full-content/toggle toggle full-content mode
//	GET  /ws                  snapshot stream (WebSocket)
//	GET  /metrics             Prometheus metrics
package inspect
