package contact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	ok := Request{Name: "Luis", Email: "luis@example.com", Message: "Quiero una cotización"}

	tests := []struct {
		name   string
		mutate func(*Request)
		want   []string
	}{
		{"valid without phone", func(*Request) {}, []string{}},
		{"valid with phone", func(r *Request) { r.Phone = "987 654 321" }, []string{}},
		{"bad phone", func(r *Request) { r.Phone = "123" }, []string{MsgPhone}},
		{"short message", func(r *Request) { r.Message = "hola" }, []string{MsgMessage}},
		{"bad priority", func(r *Request) { r.Priority = "urgent" }, []string{MsgPriority}},
		{"everything", func(r *Request) { *r = Request{Name: "L", Email: "x"} }, []string{MsgName, MsgEmail, MsgMessage}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := ok
			tt.mutate(&in)
			assert.Equal(t, tt.want, Validate(in))
		})
	}
}

func TestBuild_Defaults(t *testing.T) {
	c := Build(Request{Name: " Luis ", Email: "LUIS@example.com", Message: " Quiero una cotización "})

	assert.Equal(t, "Luis", c.Name)
	assert.Equal(t, "luis@example.com", c.Email)
	assert.Equal(t, DefaultSubject, c.Subject)
	assert.Equal(t, string(StatusNew), c.Status)
	assert.Equal(t, string(PriorityMedium), c.Priority)
	assert.Equal(t, DefaultSource, c.Source)
	assert.Equal(t, "Quiero una cotización", c.Message)
}

func TestPatch(t *testing.T) {
	archived, bogus, high := "archived", "deleted", "high"

	assert.Empty(t, Patch{Status: &archived, Priority: &high}.Validate())
	assert.Equal(t, []string{MsgStatus}, Patch{Status: &bogus}.Validate())

	c := Build(Request{Name: "Luis", Email: "luis@example.com", Message: "Quiero una cotización"})
	notes := " llamar mañana "
	Patch{Status: &archived, AdminNotes: &notes}.Apply(c)
	assert.Equal(t, "archived", c.Status)
	assert.Equal(t, "llamar mañana", c.AdminNotes)
	assert.Equal(t, string(PriorityMedium), c.Priority)
}
