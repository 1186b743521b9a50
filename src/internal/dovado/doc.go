// Package dovado provides a client for the line-based management protocol of Dovado routers.
//
// The router listens on TCP port 6435 and speaks a telnet-like dialogue: it prints a
// prompt (">> "), reads one command line and answers with text terminated by an ETB
// control character (0x17). Most informational commands answer with "KEY=value" lines
// which this package parses into an ordered Response.
//
// # Sessions
//
// A Session is one authenticated connection. It goes through the states
//
//	disconnected -> connecting -> authenticated -> request-sent -> response-received -> closed
//
// and stays in response-received after a successful exchange. Ready reports true in
// both authenticated and response-received, so several queries can share one login.
// Commands are single lines; one containing CR or LF is rejected before anything is
// written. A Session is not safe for concurrent use.
//
// The Client methods (Query, State, SendSMS, ...) open a fresh session per call, which
// matches how the router expects short-lived management connections.
//
// # Errors
//
// Failures are reported as coded errors from the internal errors package:
//
//   - CONNECTION_ERROR: dial failure, timeout or a connection dropped mid-exchange
//   - AUTH_ERROR: unknown user, wrong password, or a hang-up before login was acknowledged
//   - PROTOCOL_ERROR: a response that cannot be parsed or a refused command
//
// # Example Usage
//
//	client := dovado.NewClient(dovado.Config{
//	    Username: "admin",
//	    Password: "password",
//	    Host:     "192.168.0.1",
//	})
//	state, err := client.State(ctx)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(state.Value("signal strength"))
package dovado
