package rules

// movePair is an unordered pair of distinct moves, stored low-high.
type movePair struct {
	a, b Move
}

func pairOf(a, b Move) movePair {
	if a > b {
		a, b = b, a
	}
	return movePair{a: a, b: b}
}

// Phrase explains how one of two distinct moves beats the other.
// The lookup is symmetric. Identical moves and pairs that never meet in a
// single variant (e.g. Spock and Fire) return "".
func Phrase(first, second Move) string {
	if first == second {
		return ""
	}
	switch pairOf(first, second) {
	case pairOf(Rock, Paper):
		return "Paper covers Rock."
	case pairOf(Rock, Scissors):
		return "Rock crushes Scissors."
	case pairOf(Rock, Lizard):
		return "Rock crushes Lizard."
	case pairOf(Rock, Spock):
		return "Spock vaporizes Rock."
	case pairOf(Rock, Fire):
		return "Rock pounds out Fire."
	case pairOf(Rock, Water):
		return "Water erodes Rock"
	case pairOf(Paper, Scissors):
		return "Scissors cuts Paper."
	case pairOf(Paper, Lizard):
		return "Lizard eats Paper."
	case pairOf(Paper, Spock):
		return "Paper disproves Spock."
	case pairOf(Paper, Fire):
		return "Fire burns Paper."
	case pairOf(Paper, Water):
		return "Paper floats on Water."
	case pairOf(Scissors, Lizard):
		return "Scissors decapitates Lizard."
	case pairOf(Scissors, Spock):
		return "Spock smashes Scissors."
	case pairOf(Scissors, Fire):
		return "Fire melts Scissors."
	case pairOf(Scissors, Water):
		return "Water rusts Scissors."
	case pairOf(Lizard, Spock):
		return "Lizard poisons Spock."
	case pairOf(Fire, Water):
		return "Water puts out Fire."
	}
	return ""
}
