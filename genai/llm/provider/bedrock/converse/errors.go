package converse

import (
	"errors"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/aws/smithy-go"
	"github.com/viant/bedrockchat/genai/llm"
)

const (
	codeAccessDenied = "AccessDeniedException"
	codeThrottling   = "ThrottlingException"
	codeServiceQuota = "ServiceQuotaExceededException"
	codeValidation   = "ValidationException"
)

var codeKinds = map[string]llm.ErrorKind{
	codeAccessDenied: llm.KindAccessDenied,
	codeThrottling:   llm.KindThrottling,
	codeServiceQuota: llm.KindThrottling,
	codeValidation:   llm.KindValidation,
}

// Classify maps a Converse failure to its kind and provider error code. Typed exceptions
// and smithy API error codes are inspected first; the error text is matched only when the
// transport exposed no structured code.
func Classify(err error) (llm.ErrorKind, string) {
	if err == nil {
		return llm.KindUnknown, ""
	}
	var accessDenied *types.AccessDeniedException
	if errors.As(err, &accessDenied) {
		return llm.KindAccessDenied, codeAccessDenied
	}
	var throttling *types.ThrottlingException
	if errors.As(err, &throttling) {
		return llm.KindThrottling, codeThrottling
	}
	var validation *types.ValidationException
	if errors.As(err, &validation) {
		return llm.KindValidation, codeValidation
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		if kind, ok := codeKinds[code]; ok {
			return kind, code
		}
		return llm.KindUnknown, code
	}
	text := err.Error()
	for _, code := range []string{codeAccessDenied, codeThrottling, codeServiceQuota, codeValidation} {
		if strings.Contains(text, code) {
			return codeKinds[code], code
		}
	}
	return llm.KindUnknown, ""
}
