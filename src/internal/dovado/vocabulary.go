package dovado

import (
	"github.com/valyala/fasttemplate"
)

// Commands understood by the router.
const (
	CmdHelp     = "help"
	CmdInfo     = "info"
	CmdServices = "services"
	CmdTraffic  = "traffic"
	CmdQuit     = "quit"
)

const (
	TMPL_USERNAME = "username"
	TMPL_PASSWORD = "password"
	TMPL_NUMBER   = "number"
)

// Markers the router prints to acknowledge a step.
const (
	helloMarker         = "Hello"
	accessGrantedMarker = "Access granted"
	smsInputMarker      = "Start sms input"
)

const (
	prompt     = ">> "
	terminator = "\x17" // ETB
	smsEnd     = "\n.\n"
)

var (
	userTemplate = fasttemplate.New("user {{username}}", "{{", "}}")
	passTemplate = fasttemplate.New("pass {{password}}", "{{", "}}")
	smsTemplate  = fasttemplate.New("sms sendtxt {{number}}", "{{", "}}")
)

// UserCommand returns the login command announcing username.
func UserCommand(username string) string {
	return userTemplate.ExecuteString(map[string]interface{}{TMPL_USERNAME: username})
}

// PassCommand returns the login command carrying password.
func PassCommand(password string) string {
	return passTemplate.ExecuteString(map[string]interface{}{TMPL_PASSWORD: password})
}

// SMSCommand returns the command that opens SMS input for number.
func SMSCommand(number string) string {
	return smsTemplate.ExecuteString(map[string]interface{}{TMPL_NUMBER: number})
}
