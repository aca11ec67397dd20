package models

// Key names one keypad button: a digit "0".."9", "backspace" or "double-zero".
type Key string

const (
	KeyBackspace  Key = "backspace"
	KeyDoubleZero Key = "double-zero"
)

func digitKey(d int) Key {
	return Key(rune('0' + d))
}

func digitKeysFrom(lowest int) []Key {
	keys := make([]Key, 0, 10-lowest)
	for d := lowest; d <= 9; d++ {
		keys = append(keys, digitKey(d))
	}
	return keys
}

// DisabledKeys lists the keys the keypad should disable for the next entry into v.
// Time values assume the user types all six digits, so the digit about to be
// entered lands at position 5-len(v) of HHMMSS once complete.
func DisabledKeys(v StageValue, variant ValueVariant) []Key {
	if len(v) >= MaxStageValueDigits {
		return append(digitKeysFrom(0), KeyDoubleZero)
	}

	if variant != ValueTime {
		if len(v) == 0 {
			return []Key{KeyBackspace}
		}
		return nil
	}

	switch len(v) {
	case 0:
		// hour tens
		return append(digitKeysFrom(3), KeyBackspace)
	case 1:
		// hour units after a leading 2
		if v[0] == 2 {
			return digitKeysFrom(4)
		}
		return nil
	case 2, 4:
		// minute and second tens
		return digitKeysFrom(6)
	default:
		return nil
	}
}
