package input

import "testing"

func TestApplyDeadzone(t *testing.T) {
	const deadzone = 0.2

	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{"zero", 0.0, 0.0},
		{"below positive", 0.19, 0.0},
		{"below negative", -0.19, 0.0},
		{"at threshold", 0.2, 0.2},
		{"at threshold negative", -0.2, -0.2},
		{"above", 0.5, 0.5},
		{"above negative", -0.5, -0.5},
		{"full deflection", 1.0, 1.0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ApplyDeadzone(tc.value, deadzone); got != tc.want {
				t.Errorf("ApplyDeadzone(%v, %v) = %v, want %v", tc.value, deadzone, got, tc.want)
			}
		})
	}
}

func TestMergeButtonsOR(t *testing.T) {
	names := []string{ButtonA, ButtonB, ButtonStart, ButtonDpadUp, ButtonLeftShoulder}

	for _, name := range names {
		primary := NewState()
		primary.Connected = true
		primary.Type = TypeXInput
		primary.Buttons[name] = true

		secondary := NewState()
		secondary.Connected = true
		secondary.Type = TypeSDL
		secondary.Buttons[name] = false

		merged := Merge(primary, secondary)
		if !merged.Button(name) {
			t.Errorf("Merge: button %q = false, want true (OR semantics)", name)
		}

		// And the symmetric case: only the secondary pressing it.
		merged = Merge(secondary, primary)
		if !merged.Button(name) {
			t.Errorf("Merge reversed: button %q = false, want true", name)
		}
	}
}

func TestMergeAxesLargerMagnitudeWins(t *testing.T) {
	tests := []struct {
		name      string
		primary   float64
		secondary float64
		want      float64
	}{
		{"secondary larger", 0.3, 0.8, 0.8},
		{"primary larger", 0.9, 0.4, 0.9},
		{"secondary larger negative", 0.2, -0.7, -0.7},
		{"equal keeps primary", 0.5, 0.5, 0.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			primary := NewState()
			primary.Connected = true
			primary.Type = TypeXInput
			primary.Axes[AxisLeftX] = tc.primary

			secondary := NewState()
			secondary.Connected = true
			secondary.Axes[AxisLeftX] = tc.secondary

			merged := Merge(primary, secondary)
			if got := merged.Axis(AxisLeftX); got != tc.want {
				t.Errorf("Merge axis = %v, want %v (never a blend)", got, tc.want)
			}
		})
	}
}

func TestMergeKeepsPrimaryIdentity(t *testing.T) {
	primary := NewState()
	primary.Connected = true
	primary.Type = TypeXInput

	secondary := NewState()
	secondary.Connected = true
	secondary.Type = TypeSDL
	secondary.Axes[AxisRightX] = 1.0

	merged := Merge(primary, secondary)
	if merged.Type != TypeXInput {
		t.Errorf("Merge type = %v, want TypeXInput (identity preserved)", merged.Type)
	}
	if !merged.Connected {
		t.Error("Merge should report connected")
	}
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{TypeNone, "none"},
		{TypeXInput, "xinput"},
		{TypeSDL, "sdl"},
		{Type(42), "none"},
	}

	for _, tc := range tests {
		if got := tc.typ.String(); got != tc.want {
			t.Errorf("Type(%d).String() = %q, want %q", tc.typ, got, tc.want)
		}
	}
}
