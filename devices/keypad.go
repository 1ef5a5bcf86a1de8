package devices

// Button names one of the cabinet's physical controls.
type Button int

const (
	ButtonCoin Button = iota
	ButtonStart
	ButtonFire
	ButtonLeft
	ButtonRight
)

// button-to-bit mapping, as wired on the Space Invaders cabinet's
// player-1 input port.
var buttonBit = map[Button]byte{
	ButtonCoin:  0x01,
	ButtonStart: 0x04,
	ButtonFire:  0x10,
	ButtonLeft:  0x20,
	ButtonRight: 0x40,
}

// KeypadInput is the InputDevice for a cabinet control port. It holds
// no knowledge of keyboards or terminals — the host does its own key
// scanning and calls Press/Release to report the result — it only
// knows how to turn a set of currently-pressed buttons into the status
// byte the 8080 program expects.
type KeypadInput struct {
	pressed map[Button]bool
}

// NewKeypadInput returns a KeypadInput with nothing pressed.
func NewKeypadInput() *KeypadInput {
	return &KeypadInput{pressed: make(map[Button]bool, len(buttonBit))}
}

// Press marks b as held down.
func (k *KeypadInput) Press(b Button) { k.pressed[b] = true }

// Release marks b as no longer held.
func (k *KeypadInput) Release(b Button) { delete(k.pressed, b) }

// Read returns the status byte: bit 3 is always set (an unused line
// tied high on the cabinet), with each pressed button's bit also set.
func (k *KeypadInput) Read() byte {
	result := byte(0x08)
	for b, bit := range buttonBit {
		if k.pressed[b] {
			result |= bit
		}
	}
	return result
}
