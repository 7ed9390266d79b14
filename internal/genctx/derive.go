package genctx

import "strings"

// Derive returns a copy of r with every computed field filled in: the stage
// flags of each vector group and the message packages used by publishers and
// subscribers added to the package dependencies. Derive is idempotent.
func Derive(r RootContext) RootContext {
	out := r.Clone()
	out.Acados.Constraints = constraintSpec.derive(out.Acados.Constraints)
	out.Acados.Weights = weightSpec.derive(out.Acados.Weights)
	out.Acados.Slacks = slackSpec.derive(out.Acados.Slacks)
	out.Acados.References = referenceSpec.derive(out.Acados.References)
	for _, msgType := range out.Ros.MessageTypes() {
		if pkg := PackageFromType(msgType); pkg != "" {
			out.Package.Dependencies.Add(pkg)
		}
	}
	return out
}

// PackageFromType extracts the owning package of a ROS message type. It
// accepts "pkg/Type", "pkg/msg/Type", "pkg::Type" and a bare package name.
func PackageFromType(msgType string) string {
	t := strings.TrimSpace(msgType)
	if t == "" {
		return ""
	}
	if pkg, _, ok := strings.Cut(t, "::"); ok {
		return strings.TrimSpace(pkg)
	}
	if pkg, _, ok := strings.Cut(t, "/"); ok {
		return strings.TrimSpace(pkg)
	}
	return t
}
