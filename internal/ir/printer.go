package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatProgram renders the full module, text section first.
func FormatProgram(p *Program) string {
	var sb strings.Builder
	for _, instr := range p.Flat() {
		sb.WriteString(FormatInstr(instr))
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatInstr renders one instruction: labels as "N:", everything else as
// the opcode followed by its operands.
func FormatInstr(i Instr) string {
	if i.IsLabel() {
		return i.Op + ":"
	}
	parts := make([]string, 0, len(i.Args)+1)
	parts = append(parts, i.Op)
	for _, arg := range i.Args {
		parts = append(parts, formatArg(arg))
	}
	return "  " + strings.Join(parts, " ")
}

// formatArg renders an operand. Operand names (%N, @sym, labels) print
// bare; string payloads are quoted; aggregates print bracketed.
func formatArg(arg interface{}) string {
	switch v := arg.(type) {
	case string:
		if strings.HasPrefix(v, "%") || strings.HasPrefix(v, "@") {
			return v
		}
		return "'" + v + "'"
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case []interface{}:
		inner := make([]string, len(v))
		for i, e := range v {
			inner[i] = formatArg(e)
		}
		return "[" + strings.Join(inner, ", ") + "]"
	default:
		return fmt.Sprintf("%v", v)
	}
}
