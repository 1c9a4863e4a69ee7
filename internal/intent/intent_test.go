package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantStatus Status
		wantIntent Intent
	}{
		{
			name:       "full intent",
			content:    `{"brand":"Toyota","model":"Camry","year":2020}`,
			wantStatus: StatusExtracted,
			wantIntent: Intent{Brand: "Toyota", Model: "Camry", Year: 2020},
		},
		{
			name:       "year only",
			content:    `{"year":2019}`,
			wantStatus: StatusExtracted,
			wantIntent: Intent{Year: 2019},
		},
		{
			name:       "year as string",
			content:    `{"brand":"Honda","year":"2018"}`,
			wantStatus: StatusExtracted,
			wantIntent: Intent{Brand: "Honda", Year: 2018},
		},
		{
			name:       "fenced json",
			content:    "```json\n{\"model\":\"RAV4\"}\n```",
			wantStatus: StatusExtracted,
			wantIntent: Intent{Model: "RAV4"},
		},
		{
			name:       "surrounding whitespace",
			content:    "  \n{\"brand\":\" Lexus \"}\n",
			wantStatus: StatusExtracted,
			wantIntent: Intent{Brand: "Lexus"},
		},
		{
			name:       "empty object",
			content:    `{}`,
			wantStatus: StatusEmpty,
		},
		{
			name:       "falsy fields are absent",
			content:    `{"brand":"","model":null,"year":0}`,
			wantStatus: StatusEmpty,
		},
		{
			name:       "unrelated keys",
			content:    `{"answer":"hello"}`,
			wantStatus: StatusEmpty,
		},
		{
			name:       "malformed year ignored",
			content:    `{"brand":"BMW","year":"recent"}`,
			wantStatus: StatusExtracted,
			wantIntent: Intent{Brand: "BMW"},
		},
		{
			name:       "plain prose",
			content:    "感謝您的詢問，請問您想找哪個品牌的車呢？",
			wantStatus: StatusInvalid,
		},
		{
			name:       "json string is not an object",
			content:    `"Toyota"`,
			wantStatus: StatusInvalid,
		},
		{
			name:       "json array is not an object",
			content:    `[{"brand":"Toyota"}]`,
			wantStatus: StatusInvalid,
		},
		{
			name:       "truncated object",
			content:    `{"brand":"Toyota"`,
			wantStatus: StatusInvalid,
		},
		{
			name:       "object followed by prose",
			content:    `{"brand":"Toyota"} 還有其他需求嗎？`,
			wantStatus: StatusInvalid,
		},
		{
			name:       "extra closing brace",
			content:    `{"brand":"Toyota"}}`,
			wantStatus: StatusInvalid,
		},
		{
			name:       "extra closing bracket",
			content:    `{"model":"Camry"}]`,
			wantStatus: StatusInvalid,
		},
		{
			name:       "keys are case sensitive",
			content:    `{"BRAND":"Toyota","Model":"Camry"}`,
			wantStatus: StatusEmpty,
		},
		{
			name:       "differently cased key does not shadow brand",
			content:    `{"brand":"Toyota","Brand":5}`,
			wantStatus: StatusExtracted,
			wantIntent: Intent{Brand: "Toyota"},
		},
		{
			name:       "empty content",
			content:    "",
			wantStatus: StatusInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.content)
			assert.Equal(t, tt.wantStatus, got.Status, got.Status.String())
			assert.Equal(t, tt.wantIntent, got.Intent)
			if tt.wantStatus == StatusInvalid {
				assert.Error(t, got.Err)
				assert.False(t, got.HasCriteria())
			} else {
				assert.NoError(t, got.Err)
			}
			assert.Equal(t, tt.wantStatus == StatusExtracted, got.HasCriteria())
		})
	}
}

func TestParse_NotObjectSentinel(t *testing.T) {
	assert.ErrorIs(t, Parse(`42`).Err, ErrNotObject)
}

func TestParse_WrongFieldTypes(t *testing.T) {
	for _, content := range []string{
		`{"brand":["Toyota","Honda"]}`,
		`{"brand":"Toyota","model":{"name":"Camry"}}`,
		`{"year":true}`,
	} {
		got := Parse(content)
		assert.Equal(t, StatusInvalid, got.Status, content)
		assert.ErrorIs(t, got.Err, ErrSchema, content)
	}
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "invalid", StatusInvalid.String())
	assert.Equal(t, "empty", StatusEmpty.String())
	assert.Equal(t, "extracted", StatusExtracted.String())
}
