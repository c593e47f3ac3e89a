package mail

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/ligue-attio-sync/internal/usecase"
)

var partialFailureTemplate = template.Must(template.New("partial_failure").Parse(
	`O envio {{.SubmissionID}} não foi sincronizado por completo com o Attio.

Estágio que falhou: {{.FailedStage}} ({{.ErrorCode}})
Motivo: {{.Reason}}

O record já existe no Attio: {{.RecordID}}
Confira a entry na lista e a nota antes de reenviar.

Nome: {{.Name}}
Email: {{.Email}}
Telefone: {{.Phone}}
Mensagem: {{.Message}}
`))

func NewEmailSender(host string, port int, user, password, from, owner string) *EmailSender {
	s := &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		Owner:    owner,
	}
	s.dial = func(m *gomail.Message) error {
		d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
		return d.DialAndSend(m)
	}
	return s
}

// NotifyPartialFailure avisa o owner de que um envio parou no meio e pode precisar de ajuste manual.
func (s *EmailSender) NotifyPartialFailure(ctx context.Context, input usecase.SyncSubmissionInput, out *usecase.SyncSubmissionOutput) error {
	// sem RecordID nada chegou ao Attio; não há o que o owner ajustar
	if out == nil || out.Success || out.RecordID == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m, err := s.buildPartialFailure(input, out)
	if err != nil {
		return err
	}

	if err := s.dial(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}
	return nil
}

func (s *EmailSender) buildPartialFailure(input usecase.SyncSubmissionInput, out *usecase.SyncSubmissionOutput) (*gomail.Message, error) {
	data := PartialFailureEmailData{
		SubmissionID: out.SubmissionID,
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		Message:      input.Message,
		RecordID:     out.RecordID,
		FailedStage:  string(out.FailedStage),
		ErrorCode:    string(out.ErrorCode),
		Reason:       out.Message,
	}

	var body bytes.Buffer
	if err := partialFailureTemplate.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("erro ao processar template: %w", err)
	}

	subject := fmt.Sprintf("⚠️ Record criado com falha em %s - %s", out.FailedStage, input.Email)

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.Owner)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body.String())
	return m, nil
}
