package svg

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/Circuit2TikZ/SymbolConvert/internal/color"
)

var (
	// ErrUnexpectedCommandCount is returned when path data does not decompose
	// into exactly a start point plus one endpoint command.
	ErrUnexpectedCommandCount = errors.New("unexpected number of draw commands")

	// ErrMalformedStartCommand is returned when the first command is not a
	// move with two numeric operands.
	ErrMalformedStartCommand = errors.New("malformed start command")

	// ErrUnsupportedCommand is returned for endpoint commands outside L/l, H/h, V/v.
	ErrUnsupportedCommand = errors.New("unsupported path command")

	// ErrNonFiniteCoordinate is returned when the computed end point is not finite.
	ErrNonFiniteCoordinate = errors.New("non-finite coordinate in path data")

	// ErrMissingStroke is returned when a path element carries no stroke color.
	ErrMissingStroke = errors.New("path element has no stroke color")
)

// ParseLineSegment parses one self-closed path element whose data consists
// of a move followed by a single straight-line command, and resolves its
// stroke color through the given parser. A helper line must have a
// well-defined color, so a missing or unparsable stroke is an error rather
// than a fallback.
func ParseLineSegment(element string, colors *color.Parser) (LineSegment, error) {
	attrs := ExtractTagAttributes(element)

	stroke, ok := attrs.Get("stroke")
	if !ok || stroke == "" {
		return LineSegment{}, ErrMissingStroke
	}
	c, err := colors.Parse(stroke)
	if err != nil {
		return LineSegment{}, fmt.Errorf("path stroke: %w", err)
	}

	d, _ := attrs.Get("d")
	start, end, err := parseTwoCommandPath(d)
	if err != nil {
		return LineSegment{}, err
	}

	return LineSegment{Start: start, End: end, Color: c}, nil
}

// parseTwoCommandPath evaluates path data of the exact shape "move, then one
// line-type command". Uppercase letters are absolute, lowercase relative to
// the start point; H/V copy the untouched coordinate from the start.
func parseTwoCommandPath(d string) (start, end Point, err error) {
	tokens, err := tokenizePathData(d)
	if err != nil {
		return Point{}, Point{}, err
	}
	if len(tokens) == 0 {
		return Point{}, Point{}, ErrUnexpectedCommandCount
	}

	pos := 0
	letter, ok := tokens[pos].letter()
	if !ok || (letter != 'M' && letter != 'm') {
		return Point{}, Point{}, fmt.Errorf("%w: path must begin with a move", ErrMalformedStartCommand)
	}
	pos++

	nums, pos := takeNumbers(tokens, pos)
	if len(nums) != 2 {
		return Point{}, Point{}, fmt.Errorf("%w: move takes two operands, got %d", ErrMalformedStartCommand, len(nums))
	}
	// The initial move has no current point to be relative to, so "m" and
	// "M" both place the start absolutely.
	start = Point{X: nums[0], Y: nums[1]}

	if pos >= len(tokens) {
		return Point{}, Point{}, ErrUnexpectedCommandCount
	}
	letter, ok = tokens[pos].letter()
	if !ok {
		// A bare number here would be an implicit extra command.
		return Point{}, Point{}, ErrUnexpectedCommandCount
	}
	pos++

	var wantOperands int
	switch letter {
	case 'L', 'l':
		wantOperands = 2
	case 'H', 'h', 'V', 'v':
		wantOperands = 1
	default:
		return Point{}, Point{}, fmt.Errorf("%w: %q", ErrUnsupportedCommand, string(letter))
	}

	nums, pos = takeNumbers(tokens, pos)
	if len(nums) != wantOperands || pos != len(tokens) {
		return Point{}, Point{}, ErrUnexpectedCommandCount
	}

	end = start
	switch letter {
	case 'L':
		end = Point{X: nums[0], Y: nums[1]}
	case 'l':
		end = Point{X: start.X + nums[0], Y: start.Y + nums[1]}
	case 'H':
		end.X = nums[0]
	case 'h':
		end.X = start.X + nums[0]
	case 'V':
		end.Y = nums[0]
	case 'v':
		end.Y = start.Y + nums[0]
	}

	if !isFinite(end.X) || !isFinite(end.Y) {
		return Point{}, Point{}, fmt.Errorf("%w: %s", ErrNonFiniteCoordinate, end)
	}
	return start, end, nil
}

func isFinite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// pathToken is either a single command letter or a numeric operand.
type pathToken struct {
	cmd byte
	num float64
}

func (t pathToken) letter() (byte, bool) {
	return t.cmd, t.cmd != 0
}

// tokenizePathData splits path data into command letters and numbers.
// Separators are spaces, commas and newlines; a sign directly following a
// number starts the next operand, as in "l-3-4".
func tokenizePathData(d string) ([]pathToken, error) {
	var tokens []pathToken
	i := 0
	for i < len(d) {
		ch := d[i]
		switch {
		case ch == ' ' || ch == ',' || ch == '\t' || ch == '\n' || ch == '\r':
			i++
		case ch >= 'A' && ch <= 'Z' || ch >= 'a' && ch <= 'z':
			tokens = append(tokens, pathToken{cmd: ch})
			i++
		default:
			j := i
			if d[j] == '+' || d[j] == '-' {
				j++
			}
			for j < len(d) && (d[j] >= '0' && d[j] <= '9' || d[j] == '.') {
				j++
			}
			if j < len(d) && (d[j] == 'e' || d[j] == 'E') {
				k := j + 1
				if k < len(d) && (d[k] == '+' || d[k] == '-') {
					k++
				}
				for k < len(d) && d[k] >= '0' && d[k] <= '9' {
					k++
				}
				j = k
			}
			if j == i || (j == i+1 && (d[i] == '+' || d[i] == '-')) {
				return nil, fmt.Errorf("%w: unexpected byte %q in path data", ErrUnexpectedCommandCount, string(d[i]))
			}
			v, err := strconv.ParseFloat(d[i:j], 64)
			if err != nil && !errors.Is(err, strconv.ErrRange) {
				return nil, fmt.Errorf("%w: bad operand %q", ErrUnexpectedCommandCount, d[i:j])
			}
			tokens = append(tokens, pathToken{num: v})
			i = j
		}
	}
	return tokens, nil
}

// takeNumbers consumes consecutive numeric tokens starting at pos.
func takeNumbers(tokens []pathToken, pos int) ([]float64, int) {
	var nums []float64
	for pos < len(tokens) {
		if _, isLetter := tokens[pos].letter(); isLetter {
			break
		}
		nums = append(nums, tokens[pos].num)
		pos++
	}
	return nums, pos
}
