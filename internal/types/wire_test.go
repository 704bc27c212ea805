package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleRequest_Validate(t *testing.T) {
	assert.NoError(t, (&TitleRequest{Topic: "morning routines"}).Validate())
	assert.Error(t, (&TitleRequest{}).Validate())
}

func TestInterviewRequest_Validate(t *testing.T) {
	assert.NoError(t, (&InterviewRequest{Title: "A Title"}).Validate())
	assert.Error(t, (&InterviewRequest{}).Validate())
}

func TestContentRequest_Validate(t *testing.T) {
	assert.NoError(t, (&ContentRequest{Title: "A Title"}).Validate(), "answers are optional")
	assert.NoError(t, (&ContentRequest{Title: "A Title", ExperienceAnswers: []string{"a"}}).Validate())
	assert.Error(t, (&ContentRequest{ExperienceAnswers: []string{"a"}}).Validate())
}

func TestStyleLabelFor(t *testing.T) {
	assert.Equal(t, "How-To", StyleLabelFor(0))
	assert.Equal(t, "Story", StyleLabelFor(4))
	assert.Equal(t, "Variant 6", StyleLabelFor(5))
	assert.Equal(t, "Variant 0", StyleLabelFor(-1))
}
