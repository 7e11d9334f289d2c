package resns

import "context"

type ctxKey struct{}

// WithNamespace returns a context carrying ns. Handlers deeper in a call
// chain recover it with NamespaceFromContext or Resource.FromContext.
func WithNamespace(ctx context.Context, ns *Namespace) context.Context {
	return context.WithValue(ctx, ctxKey{}, ns)
}

// NamespaceFromContext returns the namespace carried by ctx, if any.
func NamespaceFromContext(ctx context.Context) (*Namespace, bool) {
	ns, ok := ctx.Value(ctxKey{}).(*Namespace)
	return ns, ok
}
