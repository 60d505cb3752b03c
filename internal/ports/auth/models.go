package auth

// ActorKind distingue los dos tipos de principal del producto.
type ActorKind string

const (
	ActorUser ActorKind = "user"
	ActorVet  ActorKind = "vet"
)

// Claims representa la información extraída del token.
type Claims struct {
	ActorID string
	Kind    ActorKind
	Email   string
}
