package commands

import (
	"strings"

	"github.com/maksimkurb/dovado/src/internal/domain"
	"github.com/maksimkurb/dovado/src/internal/dovado"
	"github.com/maksimkurb/dovado/src/internal/log"
)

func CreateSMSCommand() *SMSCommand {
	return &SMSCommand{}
}

// SMSCommand sends a text message: sms <telno> <message...>.
type SMSCommand struct {
	number  string
	message string
	ctx     *AppContext
	deps    *domain.AppDependencies
}

func (s *SMSCommand) Name() string {
	return "sms"
}

func (s *SMSCommand) Init(args []string, ctx *AppContext) error {
	s.ctx = ctx

	fs := newFlagSet(s.Name())
	if err := parseFlags(fs, args, ctx); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return usageErrorf("usage: sms <telno> <message...>")
	}
	s.number = fs.Arg(0)
	s.message = strings.Join(fs.Args()[1:], " ")

	if err := dovado.ValidateSMS(s.number, s.message); err != nil {
		return &UsageError{Err: err}
	}

	deps, err := loadDependencies(ctx)
	if err != nil {
		return err
	}
	s.deps = deps
	return nil
}

func (s *SMSCommand) Run() error {
	if err := s.deps.RouterClient().SendSMS(s.ctx.context(), s.number, s.message); err != nil {
		return err
	}
	log.Infof("SMS to %s sent", s.number)
	return nil
}
