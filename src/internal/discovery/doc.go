// Package discovery finds the router to talk to.
//
// Dovado routers are normally the default gateway of the host running the CLI,
// so an empty host falls back to the IPv4 default route of the main routing
// table (Linux only). Host names are resolved with a plain A query against the
// system name servers, which lets names served only by the router's own DNS
// ("home.dovado" and the like) work even when the system resolver is not
// pointed at it.
package discovery
