package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Name     string `json:"name" validate:"required,max=5"`
	Color    string `json:"color" validate:"required,hexcolor_short"`
	Username string `json:"username" validate:"omitempty,username"`
	Slug     string `json:"slug" validate:"omitempty,slug"`
}

func TestValidator_Struct(t *testing.T) {
	v := New()

	tests := []struct {
		name       string
		req        sampleRequest
		wantFields []string
	}{
		{
			name: "全部合法",
			req:  sampleRequest{Name: "soup", Color: "#fff", Username: "cook.master+1", Slug: "break_fast-1"},
		},
		{
			name:       "缺少必填字段使用 json 名",
			req:        sampleRequest{Color: "#ABCDEF"},
			wantFields: []string{"name"},
		},
		{
			name:       "颜色格式错误",
			req:        sampleRequest{Name: "soup", Color: "#GGGGGG"},
			wantFields: []string{"color"},
		},
		{
			name:       "多字段同时错误",
			req:        sampleRequest{Name: "too long name", Color: "red", Username: "bad name", Slug: "a b"},
			wantFields: []string{"name", "color", "username", "slug"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := v.Struct(tt.req)
			if len(tt.wantFields) == 0 {
				assert.Nil(t, fields)
				return
			}
			assert.Len(t, fields, len(tt.wantFields))
			for _, f := range tt.wantFields {
				assert.NotEmpty(t, fields[f], "missing field %s", f)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	merged := Merge(nil, map[string][]string{"tags": {"a"}})
	merged = Merge(merged, map[string][]string{"tags": {"b"}, "name": {"c"}})
	merged = Merge(merged, nil)

	assert.Equal(t, []string{"a", "b"}, merged["tags"])
	assert.Equal(t, []string{"c"}, merged["name"])
}
