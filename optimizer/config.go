package optimizer

// Config holds every optimisation parameter as an explicit struct
//, mirroring msolid.DruckerPrager's Init(prms
// fun.Prms) pattern one layer up in the config package.
type Config struct {
	Mu         float64 // current μ, balances COM vs Laplacian energy
	Lambda     float64 // λ, Laplacian-energy weight
	Step       float64 // current gradient step
	HullDepth  int     // plane-carving protection depth
	UseScaling bool    // whether handle scale is optimised
}
