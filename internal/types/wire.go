package types

import (
	"github.com/go-playground/validator/v10"
)

// TitleRequest is the body of the title-generation POST.
type TitleRequest struct {
	Topic string `json:"topic" validate:"required,min=1"`
}

// InterviewRequest is the body of the interview-generation POST.
type InterviewRequest struct {
	Title string `json:"title" validate:"required,min=1"`
}

// ContentRequest is the body of the streamed content-generation POST.
// ExperienceAnswers carries only the non-empty trimmed interview answers, in
// question order.
type ContentRequest struct {
	Title             string   `json:"title" validate:"required,min=1"`
	ExperienceAnswers []string `json:"experience_answers"`
}

// TitleResponse is the title-generation response. Exactly five titles are
// expected on success.
type TitleResponse struct {
	Titles                []string `json:"titles"`
	TitleSystemPromptUsed string   `json:"title_system_prompt_used"`
	TopicPromptUsed       string   `json:"topic_prompt_used"`
}

// InterviewResponse is the interview-generation response. The question count
// is not contractually fixed.
type InterviewResponse struct {
	Questions []string `json:"questions"`
}

// CompletePayload is the JSON body of the terminal `complete` stream event.
type CompletePayload struct {
	ContentHTML       string `json:"content_html"`
	ContentMarkdown   string `json:"content_markdown"`
	Excerpt           string `json:"excerpt"`
	SystemPromptUsed  string `json:"system_prompt_used"`
	ContentPromptUsed string `json:"content_prompt_used"`
	OutlineUsed       string `json:"outline_used"`
}

// ErrorPayload is the JSON body of the `error` stream event and of non-2xx
// HTTP responses.
type ErrorPayload struct {
	Detail string `json:"detail"`
}

// Validate validates the TitleRequest using the validator.
func (r *TitleRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the InterviewRequest using the validator.
func (r *InterviewRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ContentRequest using the validator.
func (r *ContentRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
