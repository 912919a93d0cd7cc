package resolver

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/mod/semver"

	"github.com/noml-lang/noml/ast"
	"github.com/noml-lang/noml/debug"
	"github.com/noml-lang/noml/value"
)

// resolveNative evaluates a @name("...") constructor call. The set of
// constructors is closed: there is no generic function-call mechanism, only
// these seven names, each validating and normalizing its single string
// argument.
func (rs *resolveState) resolveNative(v *ast.Value) (*value.Value, error) {
	if v.NativeArg == nil || v.NativeArg.Kind != ast.StringValue {
		return nil, errNativeBadForm(v.Span, v.NativeName, "", fmt.Errorf("argument must be a string literal"))
	}
	arg := v.NativeArg.Str

	if debug.Native() {
		debug.Logf("native: @%s(%q)\n", v.NativeName, arg)
	}

	switch v.NativeName {
	case "size":
		return rs.resolveSize(v, arg)
	case "duration":
		return rs.resolveDuration(v, arg)
	case "url":
		return rs.resolveURL(v, arg)
	case "ip":
		return rs.resolveIP(v, arg)
	case "semver":
		return rs.resolveSemver(v, arg)
	case "base64":
		return rs.resolveBase64(v, arg)
	case "uuid":
		return rs.resolveUUID(v, arg)
	default:
		if rs.cfg.StrictNative {
			return nil, errUnknownNative(v.Span, v.NativeName)
		}
		return value.NewNative(v.NativeName, value.NewString(arg)), nil
	}
}

var sizeUnits = map[string]int64{
	"B":  1,
	"KB": 1 << 10, "K": 1 << 10,
	"MB": 1 << 20, "M": 1 << 20,
	"GB": 1 << 30, "G": 1 << 30,
	"TB": 1 << 40,
	"PB": 1 << 50,
}

func (rs *resolveState) resolveSize(v *ast.Value, arg string) (*value.Value, error) {
	s := strings.TrimSpace(arg)
	i := 0
	for i < len(s) && (isDigitByte(s[i]) || s[i] == '.' || s[i] == '-' || s[i] == '+') {
		i++
	}
	numPart, unitPart := s[:i], strings.TrimSpace(s[i:])
	if numPart == "" {
		return nil, errNativeBadForm(v.Span, "size", arg, fmt.Errorf("missing numeric magnitude"))
	}
	mag, err := strconv.ParseFloat(numPart, 64)
	if err != nil {
		return nil, errNativeBadForm(v.Span, "size", arg, err)
	}
	if unitPart == "" {
		unitPart = "B"
	}
	mult, ok := sizeUnits[strings.ToUpper(unitPart)]
	if !ok {
		return nil, errNativeBadForm(v.Span, "size", arg, fmt.Errorf("unknown size unit %q", unitPart))
	}
	bytes := int64(mag * float64(mult))
	return value.NewNative("size", value.NewInteger(bytes)), nil
}

func isDigitByte(b byte) bool { return b >= '0' && b <= '9' }

var durationUnits = map[string]float64{
	"ns": 1e-9,
	"us": 1e-6, "µs": 1e-6,
	"ms": 1e-3,
	"s":  1,
	"m":  60,
	"h":  3600,
	"d":  86400,
}

func (rs *resolveState) resolveDuration(v *ast.Value, arg string) (*value.Value, error) {
	s := strings.TrimSpace(arg)
	if s == "" {
		return nil, errNativeBadForm(v.Span, "duration", arg, fmt.Errorf("empty duration"))
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return value.NewNative("duration", value.NewFloat(n)), nil
	}

	total := 0.0
	i := 0
	matchedAny := false
	for i < len(s) {
		start := i
		for i < len(s) && (isDigitByte(s[i]) || s[i] == '.') {
			i++
		}
		if i == start {
			return nil, errNativeBadForm(v.Span, "duration", arg, fmt.Errorf("expected a number at position %d", start))
		}
		numStr := s[start:i]
		unitStart := i
		for i < len(s) && !isDigitByte(s[i]) && s[i] != '.' {
			i++
		}
		unit := s[unitStart:i]
		if unit == "" {
			return nil, errNativeBadForm(v.Span, "duration", arg, fmt.Errorf("missing unit after %q", numStr))
		}
		mult, ok := durationUnits[unit]
		if !ok {
			return nil, errNativeBadForm(v.Span, "duration", arg, fmt.Errorf("unknown duration unit %q", unit))
		}
		n, err := strconv.ParseFloat(numStr, 64)
		if err != nil {
			return nil, errNativeBadForm(v.Span, "duration", arg, err)
		}
		total += n * mult
		matchedAny = true
	}
	if !matchedAny {
		return nil, errNativeBadForm(v.Span, "duration", arg, fmt.Errorf("no duration segments found"))
	}
	return value.NewNative("duration", value.NewFloat(total)), nil
}

func (rs *resolveState) resolveURL(v *ast.Value, arg string) (*value.Value, error) {
	u, err := url.Parse(arg)
	if err != nil {
		return nil, errNativeBadForm(v.Span, "url", arg, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errNativeBadForm(v.Span, "url", arg, fmt.Errorf("url must have a scheme and a host"))
	}
	return value.NewNative("url", value.NewString(u.String())), nil
}

func (rs *resolveState) resolveIP(v *ast.Value, arg string) (*value.Value, error) {
	ip := net.ParseIP(strings.TrimSpace(arg))
	if ip == nil {
		return nil, errNativeBadForm(v.Span, "ip", arg, fmt.Errorf("not a valid IPv4 or IPv6 address"))
	}
	return value.NewNative("ip", value.NewString(ip.String())), nil
}

func (rs *resolveState) resolveSemver(v *ast.Value, arg string) (*value.Value, error) {
	s := strings.TrimSpace(arg)
	canon := s
	if !strings.HasPrefix(canon, "v") {
		canon = "v" + canon
	}
	// semver.IsValid also accepts the vMAJOR and vMAJOR.MINOR shorthands;
	// require all three numeric components.
	core := canon
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core = core[:i]
	}
	if strings.Count(core, ".") != 2 || !semver.IsValid(canon) {
		return nil, errNativeBadForm(v.Span, "semver", arg, fmt.Errorf("not a valid semantic version"))
	}
	return value.NewNative("semver", value.NewString(s)), nil
}

func (rs *resolveState) resolveBase64(v *ast.Value, arg string) (*value.Value, error) {
	s := strings.TrimSpace(arg)
	if len(s)%4 != 0 || s == "" {
		return nil, errNativeBadForm(v.Span, "base64", arg, fmt.Errorf("length must be a non-zero multiple of 4"))
	}
	padded := false
	for i, c := range s {
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '+', c == '/':
			if padded {
				return nil, errNativeBadForm(v.Span, "base64", arg, fmt.Errorf("padding '=' only valid at the end"))
			}
		case c == '=':
			if i < len(s)-2 {
				return nil, errNativeBadForm(v.Span, "base64", arg, fmt.Errorf("padding '=' only valid at the end"))
			}
			padded = true
		default:
			return nil, errNativeBadForm(v.Span, "base64", arg, fmt.Errorf("invalid base64 character %q", c))
		}
	}
	return value.NewNative("base64", value.NewString(s)), nil
}

func (rs *resolveState) resolveUUID(v *ast.Value, arg string) (*value.Value, error) {
	s := strings.TrimSpace(arg)
	// uuid.Parse also accepts the braced, urn:uuid: and unhyphenated forms;
	// only the canonical 36-character 8-4-4-4-12 form is allowed here.
	if len(s) != 36 {
		return nil, errNativeBadForm(v.Span, "uuid", arg, fmt.Errorf("uuid must be in canonical 8-4-4-4-12 form"))
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, errNativeBadForm(v.Span, "uuid", arg, err)
	}
	return value.NewNative("uuid", value.NewString(id.String())), nil
}
