package util

import "errors"

/*ErrValueNotPresent - error: value not present */
var ErrValueNotPresent = errors.New("value not present")

/*Serializable interface */
type Serializable interface {
	Encode() []byte
	Decode([]byte) error
}
