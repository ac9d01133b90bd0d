package domain

// NoiseReason identifica a regra que classificou uma interação como ruído.
type NoiseReason string

const (
	NoiseReasonNone            NoiseReason = "none"
	NoiseReasonReadReceipt     NoiseReason = "read_receipt"
	NoiseReasonDeliveryReceipt NoiseReason = "delivery_receipt"
	NoiseReasonMassEmail       NoiseReason = "mass_email"
)

// NoiseClassification é o resultado derivado da classificação de ruído.
// Nunca é persistida isoladamente: é recalculada a cada execução do gold.
type NoiseClassification struct {
	IsNoise bool        `json:"is_noise"`
	Reason  NoiseReason `json:"reason"`
}
