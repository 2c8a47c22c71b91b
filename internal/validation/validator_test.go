// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package validation

import (
	"strconv"
	"strings"
	"testing"
)

// ===================================================================================================
// Singleton Validator Tests
// ===================================================================================================

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}

	if v1 == nil {
		t.Error("GetValidator() should not return nil")
	}
}

// ===================================================================================================
// Study Request Validation
// ===================================================================================================

type ratingRequest struct {
	ArticleID string `json:"article_id" validate:"required,max=128,feedbackkey"`
	Rating    string `json:"rating" validate:"required,likert"`
	Comment   string `json:"comment" validate:"max=20"`
}

type numericRating struct {
	Rating int `json:"rating" validate:"likert"`
}

type susRequest struct {
	Age       string            `json:"age"`
	Responses map[string]string `json:"responses" validate:"len=10,dive,keys,susquestion,endkeys,likert"`
}

func fullSUS(value string) map[string]string {
	responses := make(map[string]string, SUSQuestionCount)
	for i := 1; i <= SUSQuestionCount; i++ {
		responses[SUSQuestionPrefix+strconv.Itoa(i)] = value
	}
	return responses
}

func TestValidateStruct_Rating(t *testing.T) {
	tests := []struct {
		name    string
		input   ratingRequest
		wantErr bool
		wantTag string
	}{
		{name: "valid", input: ratingRequest{ArticleID: "a1", Rating: "4"}},
		{name: "valid lower bound", input: ratingRequest{ArticleID: "a1", Rating: "1"}},
		{name: "valid upper bound", input: ratingRequest{ArticleID: "a1", Rating: "5"}},
		{name: "missing article", input: ratingRequest{Rating: "3"}, wantErr: true, wantTag: "required"},
		{name: "missing rating", input: ratingRequest{ArticleID: "a1"}, wantErr: true, wantTag: "required"},
		{name: "rating zero", input: ratingRequest{ArticleID: "a1", Rating: "0"}, wantErr: true, wantTag: "likert"},
		{name: "rating six", input: ratingRequest{ArticleID: "a1", Rating: "6"}, wantErr: true, wantTag: "likert"},
		{name: "rating fraction", input: ratingRequest{ArticleID: "a1", Rating: "3.5"}, wantErr: true, wantTag: "likert"},
		{name: "rating word", input: ratingRequest{ArticleID: "a1", Rating: "good"}, wantErr: true, wantTag: "likert"},
		{name: "dotted id", input: ratingRequest{ArticleID: "a.1", Rating: "3"}, wantErr: true, wantTag: "feedbackkey"},
		{name: "dollar id", input: ratingRequest{ArticleID: "$where", Rating: "3"}, wantErr: true, wantTag: "feedbackkey"},
		{name: "long comment", input: ratingRequest{ArticleID: "a1", Rating: "3", Comment: strings.Repeat("x", 21)}, wantErr: true, wantTag: "max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("ValidateStruct() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("ValidateStruct() error = nil, want error")
			}
			if got := err.Errors()[0].Tag(); got != tt.wantTag {
				t.Errorf("tag = %q, want %q", got, tt.wantTag)
			}
		})
	}
}

func TestValidateStruct_NumericLikert(t *testing.T) {
	for n := -1; n <= 7; n++ {
		err := ValidateStruct(&numericRating{Rating: n})
		want := n >= 1 && n <= 5
		if (err == nil) != want {
			t.Errorf("Rating %d: valid = %v, want %v", n, err == nil, want)
		}
	}
}

func TestValidateStruct_SUS(t *testing.T) {
	if err := ValidateStruct(&susRequest{Responses: fullSUS("3")}); err != nil {
		t.Fatalf("complete SUS rejected: %v", err)
	}

	partial := fullSUS("3")
	delete(partial, "sus_question7")
	err := ValidateStruct(&susRequest{Responses: partial})
	if err == nil || err.Errors()[0].Tag() != "len" {
		t.Errorf("nine answers: err = %v, want len failure", err)
	}

	unknown := fullSUS("3")
	delete(unknown, "sus_question7")
	unknown["sus_question11"] = "3"
	err = ValidateStruct(&susRequest{Responses: unknown})
	if err == nil || err.Errors()[0].Tag() != "susquestion" {
		t.Errorf("unknown key: err = %v, want susquestion failure", err)
	}

	bad := fullSUS("3")
	bad["sus_question2"] = "9"
	err = ValidateStruct(&susRequest{Responses: bad})
	if err == nil || err.Errors()[0].Tag() != "likert" {
		t.Errorf("out-of-range answer: err = %v, want likert failure", err)
	}
}

func TestIsSUSQuestion(t *testing.T) {
	tests := map[string]bool{
		"sus_question1":  true,
		"sus_question5":  true,
		"sus_question10": true,
		"sus_question0":  false,
		"sus_question01": false,
		"sus_question11": false,
		"sus_question":   false,
		"sus_questionx":  false,
		"question1":      false,
		"":               false,
	}
	for key, want := range tests {
		if got := IsSUSQuestion(key); got != want {
			t.Errorf("IsSUSQuestion(%q) = %v, want %v", key, got, want)
		}
	}
}

func TestValidFeedbackKey(t *testing.T) {
	tests := map[string]bool{
		"550e8400-e29b-41d4-a716-446655440000": true,
		"a1":                                   true,
		"":                                     false,
		"a.b":                                  false,
		"$set":                                 false,
		"a\x00b":                               false,
	}
	for key, want := range tests {
		if got := ValidFeedbackKey(key); got != want {
			t.Errorf("ValidFeedbackKey(%q) = %v, want %v", key, got, want)
		}
	}
}

// ===================================================================================================
// Error Conversion Tests
// ===================================================================================================

func TestToAPIError_SingleError(t *testing.T) {
	err := ValidateStruct(&ratingRequest{ArticleID: "a1", Rating: "7"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Message != "rating must be an integer from 1 to 5" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if apiErr.Details["field"] != "rating" {
		t.Errorf("Details[field] = %v, want json name rating", apiErr.Details["field"])
	}
}

func TestToAPIError_MultipleErrors(t *testing.T) {
	err := ValidateStruct(&ratingRequest{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if len(err.Errors()) != 2 {
		t.Fatalf("got %d errors, want 2", len(err.Errors()))
	}

	apiErr := err.ToAPIError()
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Fatalf("Details[fields] = %v", apiErr.Details["fields"])
	}
	if !strings.Contains(apiErr.Message, "article_id: article_id is required") {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if !strings.Contains(err.Error(), "; ") {
		t.Errorf("Error() = %q, want joined messages", err.Error())
	}
}

func TestToAPIError_Empty(t *testing.T) {
	ve := &RequestValidationError{}
	if ve.Error() != "validation failed" {
		t.Errorf("Error() = %q", ve.Error())
	}
	if got := ve.ToAPIError(); got.Code != "VALIDATION_ERROR" || got.Details != nil {
		t.Errorf("ToAPIError() = %+v", got)
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  string
	}{
		{
			name:  "string max",
			input: &ratingRequest{ArticleID: "a1", Rating: "2", Comment: strings.Repeat("y", 30)},
			want:  "comment must be at most 20 characters",
		},
		{
			name:  "map len",
			input: &susRequest{Responses: map[string]string{"sus_question1": "3"}},
			want:  "responses must have exactly 10 items",
		},
		{
			name:  "feedback key",
			input: &ratingRequest{ArticleID: "x.y", Rating: "2"},
			want:  "article_id must not be empty or contain '.', '$' or NUL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.input)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if got := err.Errors()[0].Error(); got != tt.want {
				t.Errorf("message = %q, want %q", got, tt.want)
			}
		})
	}
}
