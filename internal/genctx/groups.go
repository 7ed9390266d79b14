package genctx

// Field binds a serialized key of a vector group to its ValueVector.
type Field[T any] struct {
	// Key is the acados field name, also used as the mapping key.
	Key string
	// Label is the default human-readable label.
	Label string
	// Get returns the vector addressed by Key inside g.
	Get func(g *T) *ValueVector
}

// Stage classifies the field by its key suffix.
func (f Field[T]) Stage() Stage {
	return StageOf(f.Key)
}

// groupSpec is the field table of one vector group.
type groupSpec[T any] struct {
	flags  func(g *T) *StageFlags
	fields []Field[T]
}

// defaults returns a group whose vectors carry their names and labels and no values.
func (s groupSpec[T]) defaults() T {
	var g T
	for _, f := range s.fields {
		*f.Get(&g) = ValueVector{Name: f.Key, Label: f.Label, Values: []float64{}}
	}
	return g
}

// clone deep-copies every vector of g.
func (s groupSpec[T]) clone(g T) T {
	out := g
	for _, f := range s.fields {
		*f.Get(&out) = f.Get(&g).Clone()
	}
	return out
}

// derive returns a copy of g whose flags reflect the non-empty vectors per stage.
func (s groupSpec[T]) derive(g T) T {
	out := s.clone(g)
	var flags StageFlags
	for _, f := range s.fields {
		flags.mark(f.Stage(), f.Get(&out).NonEmpty())
	}
	*s.flags(&out) = flags
	return out
}

// toMap renders g as a plain mapping keyed by field name, plus its flags.
func (s groupSpec[T]) toMap(g T) map[string]any {
	out := make(map[string]any, len(s.fields)+3)
	for _, f := range s.fields {
		out[f.Key] = f.Get(&g).ToMap()
	}
	s.flags(&g).toMap(out)
	return out
}

// ConstraintFields returns the field table of ConstraintSet.
func ConstraintFields() []Field[ConstraintSet] { return constraintSpec.fields }

// WeightFields returns the field table of WeightSet.
func WeightFields() []Field[WeightSet] { return weightSpec.fields }

// SlackFields returns the field table of SlackSet.
func SlackFields() []Field[SlackSet] { return slackSpec.fields }

// ReferenceFields returns the field table of ReferenceSet.
func ReferenceFields() []Field[ReferenceSet] { return referenceSpec.fields }

// ConstraintSet holds state, input, nonlinear and polytopic bounds and their slack bounds.
type ConstraintSet struct {
	StageFlags `yaml:",inline"`

	Lbx0   ValueVector `yaml:"lbx_0"`
	Ubx0   ValueVector `yaml:"ubx_0"`
	Lbx    ValueVector `yaml:"lbx"`
	Ubx    ValueVector `yaml:"ubx"`
	LbxE   ValueVector `yaml:"lbx_e"`
	UbxE   ValueVector `yaml:"ubx_e"`
	Lsbx   ValueVector `yaml:"lsbx"`
	Usbx   ValueVector `yaml:"usbx"`
	LsbxE  ValueVector `yaml:"lsbx_e"`
	UsbxE  ValueVector `yaml:"usbx_e"`
	Lbu    ValueVector `yaml:"lbu"`
	Ubu    ValueVector `yaml:"ubu"`
	Lsbu   ValueVector `yaml:"lsbu"`
	Usbu   ValueVector `yaml:"usbu"`
	Lh     ValueVector `yaml:"lh"`
	Uh     ValueVector `yaml:"uh"`
	Lh0    ValueVector `yaml:"lh_0"`
	Uh0    ValueVector `yaml:"uh_0"`
	LhE    ValueVector `yaml:"lh_e"`
	UhE    ValueVector `yaml:"uh_e"`
	Lsh    ValueVector `yaml:"lsh"`
	Ush    ValueVector `yaml:"ush"`
	Lsh0   ValueVector `yaml:"lsh_0"`
	Ush0   ValueVector `yaml:"ush_0"`
	LshE   ValueVector `yaml:"lsh_e"`
	UshE   ValueVector `yaml:"ush_e"`
	Lphi   ValueVector `yaml:"lphi"`
	Uphi   ValueVector `yaml:"uphi"`
	Lphi0  ValueVector `yaml:"lphi_0"`
	Uphi0  ValueVector `yaml:"uphi_0"`
	LphiE  ValueVector `yaml:"lphi_e"`
	UphiE  ValueVector `yaml:"uphi_e"`
	Lsphi  ValueVector `yaml:"lsphi"`
	Usphi  ValueVector `yaml:"usphi"`
	Lsphi0 ValueVector `yaml:"lsphi_0"`
	Usphi0 ValueVector `yaml:"usphi_0"`
	LsphiE ValueVector `yaml:"lsphi_e"`
	UsphiE ValueVector `yaml:"usphi_e"`
	Lg     ValueVector `yaml:"lg"`
	Ug     ValueVector `yaml:"ug"`
	LgE    ValueVector `yaml:"lg_e"`
	UgE    ValueVector `yaml:"ug_e"`
	Lsg    ValueVector `yaml:"lsg"`
	Usg    ValueVector `yaml:"usg"`
	LsgE   ValueVector `yaml:"lsg_e"`
	UsgE   ValueVector `yaml:"usg_e"`
}

var constraintSpec = groupSpec[ConstraintSet]{
	flags: func(g *ConstraintSet) *StageFlags { return &g.StageFlags },
	fields: []Field[ConstraintSet]{
		{Key: "lbx_0", Label: "Lower Bound X Initial", Get: func(g *ConstraintSet) *ValueVector { return &g.Lbx0 }},
		{Key: "ubx_0", Label: "Upper Bound X Initial", Get: func(g *ConstraintSet) *ValueVector { return &g.Ubx0 }},
		{Key: "lbx", Label: "Lower Bound X", Get: func(g *ConstraintSet) *ValueVector { return &g.Lbx }},
		{Key: "ubx", Label: "Upper Bound X", Get: func(g *ConstraintSet) *ValueVector { return &g.Ubx }},
		{Key: "lbx_e", Label: "Lower Bound X Terminal", Get: func(g *ConstraintSet) *ValueVector { return &g.LbxE }},
		{Key: "ubx_e", Label: "Upper Bound X Terminal", Get: func(g *ConstraintSet) *ValueVector { return &g.UbxE }},
		{Key: "lsbx", Label: "Lower Slack Bound X", Get: func(g *ConstraintSet) *ValueVector { return &g.Lsbx }},
		{Key: "usbx", Label: "Upper Slack Bound X", Get: func(g *ConstraintSet) *ValueVector { return &g.Usbx }},
		{Key: "lsbx_e", Label: "Lower Slack Bound X Terminal", Get: func(g *ConstraintSet) *ValueVector { return &g.LsbxE }},
		{Key: "usbx_e", Label: "Upper Slack Bound X Terminal", Get: func(g *ConstraintSet) *ValueVector { return &g.UsbxE }},
		{Key: "lbu", Label: "Lower Bound U", Get: func(g *ConstraintSet) *ValueVector { return &g.Lbu }},
		{Key: "ubu", Label: "Upper Bound U", Get: func(g *ConstraintSet) *ValueVector { return &g.Ubu }},
		{Key: "lsbu", Label: "Lower Slack Bound U", Get: func(g *ConstraintSet) *ValueVector { return &g.Lsbu }},
		{Key: "usbu", Label: "Upper Slack Bound U", Get: func(g *ConstraintSet) *ValueVector { return &g.Usbu }},
		{Key: "lh", Label: "Lower Bound H", Get: func(g *ConstraintSet) *ValueVector { return &g.Lh }},
		{Key: "uh", Label: "Upper Bound H", Get: func(g *ConstraintSet) *ValueVector { return &g.Uh }},
		{Key: "lh_0", Label: "Lower Bound H Initial", Get: func(g *ConstraintSet) *ValueVector { return &g.Lh0 }},
		{Key: "uh_0", Label: "Upper Bound H Initial", Get: func(g *ConstraintSet) *ValueVector { return &g.Uh0 }},
		{Key: "lh_e", Label: "Lower Bound H Terminal", Get: func(g *ConstraintSet) *ValueVector { return &g.LhE }},
		{Key: "uh_e", Label: "Upper Bound H Terminal", Get: func(g *ConstraintSet) *ValueVector { return &g.UhE }},
		{Key: "lsh", Label: "Lower Slack Bound H", Get: func(g *ConstraintSet) *ValueVector { return &g.Lsh }},
		{Key: "ush", Label: "Upper Slack Bound H", Get: func(g *ConstraintSet) *ValueVector { return &g.Ush }},
		{Key: "lsh_0", Label: "Lower Slack Bound H Initial", Get: func(g *ConstraintSet) *ValueVector { return &g.Lsh0 }},
		{Key: "ush_0", Label: "Upper Slack Bound H Initial", Get: func(g *ConstraintSet) *ValueVector { return &g.Ush0 }},
		{Key: "lsh_e", Label: "Lower Slack Bound H Terminal", Get: func(g *ConstraintSet) *ValueVector { return &g.LshE }},
		{Key: "ush_e", Label: "Upper Slack Bound H Terminal", Get: func(g *ConstraintSet) *ValueVector { return &g.UshE }},
		{Key: "lphi", Label: "Lower Bound Phi", Get: func(g *ConstraintSet) *ValueVector { return &g.Lphi }},
		{Key: "uphi", Label: "Upper Bound Phi", Get: func(g *ConstraintSet) *ValueVector { return &g.Uphi }},
		{Key: "lphi_0", Label: "Lower Bound Phi Initial", Get: func(g *ConstraintSet) *ValueVector { return &g.Lphi0 }},
		{Key: "uphi_0", Label: "Upper Bound Phi Initial", Get: func(g *ConstraintSet) *ValueVector { return &g.Uphi0 }},
		{Key: "lphi_e", Label: "Lower Bound Phi Terminal", Get: func(g *ConstraintSet) *ValueVector { return &g.LphiE }},
		{Key: "uphi_e", Label: "Upper Bound Phi Terminal", Get: func(g *ConstraintSet) *ValueVector { return &g.UphiE }},
		{Key: "lsphi", Label: "Lower Slack Bound Phi", Get: func(g *ConstraintSet) *ValueVector { return &g.Lsphi }},
		{Key: "usphi", Label: "Upper Slack Bound Phi", Get: func(g *ConstraintSet) *ValueVector { return &g.Usphi }},
		{Key: "lsphi_0", Label: "Lower Slack Bound Phi Initial", Get: func(g *ConstraintSet) *ValueVector { return &g.Lsphi0 }},
		{Key: "usphi_0", Label: "Upper Slack Bound Phi Initial", Get: func(g *ConstraintSet) *ValueVector { return &g.Usphi0 }},
		{Key: "lsphi_e", Label: "Lower Slack Bound Phi Terminal", Get: func(g *ConstraintSet) *ValueVector { return &g.LsphiE }},
		{Key: "usphi_e", Label: "Upper Slack Bound Phi Terminal", Get: func(g *ConstraintSet) *ValueVector { return &g.UsphiE }},
		{Key: "lg", Label: "Lower Bound G", Get: func(g *ConstraintSet) *ValueVector { return &g.Lg }},
		{Key: "ug", Label: "Upper Bound G", Get: func(g *ConstraintSet) *ValueVector { return &g.Ug }},
		{Key: "lg_e", Label: "Lower Bound G Terminal", Get: func(g *ConstraintSet) *ValueVector { return &g.LgE }},
		{Key: "ug_e", Label: "Upper Bound G Terminal", Get: func(g *ConstraintSet) *ValueVector { return &g.UgE }},
		{Key: "lsg", Label: "Lower Slack Bound G", Get: func(g *ConstraintSet) *ValueVector { return &g.Lsg }},
		{Key: "usg", Label: "Upper Slack Bound G", Get: func(g *ConstraintSet) *ValueVector { return &g.Usg }},
		{Key: "lsg_e", Label: "Lower Slack Bound G Terminal", Get: func(g *ConstraintSet) *ValueVector { return &g.LsgE }},
		{Key: "usg_e", Label: "Upper Slack Bound G Terminal", Get: func(g *ConstraintSet) *ValueVector { return &g.UsgE }},
	},
}

// WeightSet holds the diagonal cost weights per stage.
type WeightSet struct {
	StageFlags `yaml:",inline"`

	W0 ValueVector `yaml:"W_0"`
	W  ValueVector `yaml:"W"`
	WE ValueVector `yaml:"W_e"`
}

var weightSpec = groupSpec[WeightSet]{
	flags: func(g *WeightSet) *StageFlags { return &g.StageFlags },
	fields: []Field[WeightSet]{
		{Key: "W_0", Label: "Initial Weight", Get: func(g *WeightSet) *ValueVector { return &g.W0 }},
		{Key: "W", Label: "Stage Weight", Get: func(g *WeightSet) *ValueVector { return &g.W }},
		{Key: "W_e", Label: "Terminal Weight", Get: func(g *WeightSet) *ValueVector { return &g.WE }},
	},
}

// SlackSet holds the diagonal slack Hessian (Z) and slack gradient (z) terms per stage.
type SlackSet struct {
	StageFlags `yaml:",inline"`

	ZlHess0 ValueVector `yaml:"Zl_0"`
	ZlHess  ValueVector `yaml:"Zl"`
	ZlHessE ValueVector `yaml:"Zl_e"`
	ZuHess0 ValueVector `yaml:"Zu_0"`
	ZuHess  ValueVector `yaml:"Zu"`
	ZuHessE ValueVector `yaml:"Zu_e"`
	ZlGrad0 ValueVector `yaml:"zl_0"`
	ZlGrad  ValueVector `yaml:"zl"`
	ZlGradE ValueVector `yaml:"zl_e"`
	ZuGrad0 ValueVector `yaml:"zu_0"`
	ZuGrad  ValueVector `yaml:"zu"`
	ZuGradE ValueVector `yaml:"zu_e"`
}

var slackSpec = groupSpec[SlackSet]{
	flags: func(g *SlackSet) *StageFlags { return &g.StageFlags },
	fields: []Field[SlackSet]{
		{Key: "Zl_0", Label: "Initial Lower Slack Hessian", Get: func(g *SlackSet) *ValueVector { return &g.ZlHess0 }},
		{Key: "Zl", Label: "Lower Slack Hessian", Get: func(g *SlackSet) *ValueVector { return &g.ZlHess }},
		{Key: "Zl_e", Label: "Terminal Lower Slack Hessian", Get: func(g *SlackSet) *ValueVector { return &g.ZlHessE }},
		{Key: "Zu_0", Label: "Initial Upper Slack Hessian", Get: func(g *SlackSet) *ValueVector { return &g.ZuHess0 }},
		{Key: "Zu", Label: "Upper Slack Hessian", Get: func(g *SlackSet) *ValueVector { return &g.ZuHess }},
		{Key: "Zu_e", Label: "Terminal Upper Slack Hessian", Get: func(g *SlackSet) *ValueVector { return &g.ZuHessE }},
		{Key: "zl_0", Label: "Initial Lower Slack Gradient", Get: func(g *SlackSet) *ValueVector { return &g.ZlGrad0 }},
		{Key: "zl", Label: "Lower Slack Gradient", Get: func(g *SlackSet) *ValueVector { return &g.ZlGrad }},
		{Key: "zl_e", Label: "Terminal Lower Slack Gradient", Get: func(g *SlackSet) *ValueVector { return &g.ZlGradE }},
		{Key: "zu_0", Label: "Initial Upper Slack Gradient", Get: func(g *SlackSet) *ValueVector { return &g.ZuGrad0 }},
		{Key: "zu", Label: "Upper Slack Gradient", Get: func(g *SlackSet) *ValueVector { return &g.ZuGrad }},
		{Key: "zu_e", Label: "Terminal Upper Slack Gradient", Get: func(g *SlackSet) *ValueVector { return &g.ZuGradE }},
	},
}

// ReferenceSet holds the cost references per stage.
type ReferenceSet struct {
	StageFlags `yaml:",inline"`

	Yref0 ValueVector `yaml:"yref_0"`
	Yref  ValueVector `yaml:"yref"`
	YrefE ValueVector `yaml:"yref_e"`
}

var referenceSpec = groupSpec[ReferenceSet]{
	flags: func(g *ReferenceSet) *StageFlags { return &g.StageFlags },
	fields: []Field[ReferenceSet]{
		{Key: "yref_0", Label: "Initial Reference", Get: func(g *ReferenceSet) *ValueVector { return &g.Yref0 }},
		{Key: "yref", Label: "Stage Reference", Get: func(g *ReferenceSet) *ValueVector { return &g.Yref }},
		{Key: "yref_e", Label: "Terminal Reference", Get: func(g *ReferenceSet) *ValueVector { return &g.YrefE }},
	},
}
