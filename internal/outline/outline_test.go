package outline

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		outline Outline
		wantErr bool
	}{
		{
			name: "minimal valid",
			outline: Outline{
				{Type: BlockTitle, Title: "T"},
				{Type: BlockConclusion, Title: "C", Points: []string{"x"}},
			},
		},
		{
			name: "with sections",
			outline: Outline{
				{Type: BlockTitle, Title: "T"},
				{Type: BlockSection, Title: "S1", Points: []string{"a"}},
				{Type: BlockSection, Title: "S2", Points: []string{"a", "b", "c", "d", "e", "f"}},
				{Type: BlockConclusion, Title: "C", Points: []string{"x"}},
			},
		},
		{
			name:    "too short",
			outline: Outline{{Type: BlockTitle, Title: "T"}},
			wantErr: true,
		},
		{
			name: "title not first",
			outline: Outline{
				{Type: BlockSection, Title: "S", Points: []string{"a"}},
				{Type: BlockConclusion, Title: "C", Points: []string{"x"}},
			},
			wantErr: true,
		},
		{
			name: "conclusion not last",
			outline: Outline{
				{Type: BlockTitle, Title: "T"},
				{Type: BlockSection, Title: "S", Points: []string{"a"}},
			},
			wantErr: true,
		},
		{
			name: "conclusion without points",
			outline: Outline{
				{Type: BlockTitle, Title: "T"},
				{Type: BlockConclusion, Title: "C"},
			},
			wantErr: true,
		},
		{
			name: "section without points",
			outline: Outline{
				{Type: BlockTitle, Title: "T"},
				{Type: BlockSection, Title: "S"},
				{Type: BlockConclusion, Title: "C", Points: []string{"x"}},
			},
			wantErr: true,
		},
		{
			name: "section over point cap",
			outline: Outline{
				{Type: BlockTitle, Title: "T"},
				{Type: BlockSection, Title: "S", Points: []string{"a", "b", "c", "d", "e", "f", "g"}},
				{Type: BlockConclusion, Title: "C", Points: []string{"x"}},
			},
			wantErr: true,
		},
		{
			name: "interior title block",
			outline: Outline{
				{Type: BlockTitle, Title: "T"},
				{Type: BlockTitle, Title: "T2"},
				{Type: BlockConclusion, Title: "C", Points: []string{"x"}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.outline.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSections(t *testing.T) {
	o := Outline{
		{Type: BlockTitle, Title: "T"},
		{Type: BlockSection, Title: "S1", Points: []string{"a"}},
		{Type: BlockSection, Title: "S2", Points: []string{"b"}},
		{Type: BlockConclusion, Title: "C", Points: []string{"x"}},
	}

	sections := o.Sections()
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].Title != "S1" || sections[1].Title != "S2" {
		t.Errorf("unexpected sections: %+v", sections)
	}

	if got := (Outline{}).Sections(); len(got) != 0 {
		t.Errorf("empty outline should have no sections, got %d", len(got))
	}
}
