package domain

// Payment states for a registration.
const (
	EstadoPendiente  = "pendiente"
	EstadoCompletado = "completado"
)

// Pricing phases by month of year.
const (
	FasePreventa       = "preventa"
	FaseOrdinaria      = "ordinaria"
	FaseExtraordinaria = "extraordinaria"
)

// Commission modes for the platform cut.
const (
	CommissionPercentage = "percentage"
	CommissionFixed      = "fixed"
)

const RoleAdmin = "ADMIN"

// DefaultCategoryPrice applies when a requested category is missing from the
// price table, in COP.
const DefaultCategoryPrice = 80000
