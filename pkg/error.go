package pkg

import "errors"

// Two-wire bus errors.
var (
	// ErrAddressNack indicates the target did not acknowledge its address.
	ErrAddressNack = errors.New("address not acknowledged")

	// ErrDataNack indicates the target rejected a data byte mid-transfer.
	ErrDataNack = errors.New("data not acknowledged")

	// ErrTimeout indicates a bus timeout (e.g. indefinite clock stretch).
	ErrTimeout = errors.New("bus timeout")

	// ErrBusLost indicates bus ownership was lost mid-transaction.
	ErrBusLost = errors.New("bus ownership lost")

	// ErrDataTooLong indicates a payload exceeds the transmit buffer.
	ErrDataTooLong = errors.New("data too long for transmit buffer")

	// ErrBusFault is reserved for adapter-level failures not otherwise classified.
	ErrBusFault = errors.New("bus fault")

	// ErrNotConfigured indicates the controller has not been started with Begin.
	ErrNotConfigured = errors.New("controller not configured")

	// ErrInvalidParameter indicates an invalid parameter was provided.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrBufferFull indicates a fixed-capacity buffer is full.
	ErrBufferFull = errors.New("buffer full")

	// ErrAlreadyBound indicates an interrupt line already has a controller bound.
	ErrAlreadyBound = errors.New("interrupt line already bound")
)

// TxStatus represents the completion status of a write transaction.
//
// The integer values match the classic two-wire error codes returned by
// endTransmission: 0 success, 1 data too long, 2 address NACK, 3 data NACK,
// 4 timeout, 5 other.
type TxStatus uint8

// Write transaction status values.
const (
	TxSuccess     TxStatus = iota // Transaction completed successfully
	TxDataTooLong                 // Payload exceeded buffer capacity (reserved)
	TxAddressNack                 // Address phase not acknowledged
	TxDataNack                    // Data byte not acknowledged
	TxTimeout                     // Bus timed out and was reset
	TxOther                       // Unclassified adapter failure
)

// String returns a string representation of the transaction status.
func (s TxStatus) String() string {
	switch s {
	case TxSuccess:
		return "success"
	case TxDataTooLong:
		return "data too long"
	case TxAddressNack:
		return "address nack"
	case TxDataNack:
		return "data nack"
	case TxTimeout:
		return "timeout"
	case TxOther:
		return "other"
	default:
		return "unknown"
	}
}

// Error returns the corresponding error for the transaction status.
func (s TxStatus) Error() error {
	switch s {
	case TxSuccess:
		return nil
	case TxDataTooLong:
		return ErrDataTooLong
	case TxAddressNack:
		return ErrAddressNack
	case TxDataNack:
		return ErrDataNack
	case TxTimeout:
		return ErrTimeout
	default:
		return ErrBusFault
	}
}
