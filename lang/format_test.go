package lang

import "testing"

func TestFormatResult(t *testing.T) {
	tests := []struct {
		name string
		expr Expression
		want string
	}{
		{name: "integer", expr: Integer(6), want: "6"},
		{name: "negative integer", expr: Integer(-3), want: "-3"},
		{
			name: "template",
			expr: DiceRollTemplate{Args: nil, Expressions: []Expression{Integer(1)}},
			want: "<template>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatResult(tt.expr); got != tt.want {
				t.Errorf("FormatResult() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatSet(t *testing.T) {
	got := FormatSet("atk", Integer(6))

	want := `"atk" => Integer(6)`
	if got != want {
		t.Errorf("FormatSet() = %q, want %q", got, want)
	}
}
