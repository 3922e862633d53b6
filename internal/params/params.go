package params

const (
	SecParam = 256
	SecBytes = SecParam / 8
)
