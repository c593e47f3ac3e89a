package attio

import (
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeTransport    = "ATTIO_TRANSPORT_ERROR"
	TextCodeBadResponse  = "ATTIO_BAD_RESPONSE"
	TextCodeHTTPFallback = "ATTIO_HTTP_ERROR"
)

func categoryForStatus(status int) goerrors.Category {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return goerrors.CategoryValidation
	case http.StatusUnauthorized:
		return goerrors.CategoryAuth
	case http.StatusForbidden:
		return goerrors.CategoryAuthz
	case http.StatusNotFound:
		return goerrors.CategoryNotFound
	case http.StatusConflict:
		return goerrors.CategoryConflict
	case http.StatusTooManyRequests:
		return goerrors.CategoryRateLimit
	default:
		return goerrors.CategoryExternal
	}
}

// apiError monta o erro a partir da resposta não-2xx. O code do Attio vira o TextCode em maiúsculas.
func apiError(status int, body ErrorResponse, path string) error {
	message := strings.TrimSpace(body.Message)
	if message == "" {
		message = "attio: " + http.StatusText(status)
	}
	textCode := TextCodeHTTPFallback
	if code := strings.TrimSpace(body.Code); code != "" {
		textCode = strings.ToUpper(code)
	}

	err := goerrors.New(message, categoryForStatus(status)).
		WithCode(status).
		WithTextCode(textCode)
	err.WithMetadata(map[string]any{
		"path":       path,
		"attio_type": body.Type,
		"attio_code": body.Code,
	})
	return err
}

func transportError(source error, path string) error {
	err := goerrors.Wrap(source, goerrors.CategoryExternal, "attio: falha na requisição").
		WithCode(http.StatusBadGateway).
		WithTextCode(TextCodeTransport)
	err.WithMetadata(map[string]any{"path": path})
	return err
}

func badResponseError(source error, path string) error {
	err := goerrors.Wrap(source, goerrors.CategoryExternal, "attio: resposta inválida").
		WithCode(http.StatusBadGateway).
		WithTextCode(TextCodeBadResponse)
	err.WithMetadata(map[string]any{"path": path})
	return err
}

// IsMultipleMatch indica o erro de assert ambíguo (mais de uma entry para o mesmo parent).
func IsMultipleMatch(err error) bool {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		return false
	}
	return rich.TextCode == strings.ToUpper(CodeMultipleMatchResults)
}
