package command

import "strconv"

// Opcodes, densely numbered with the family-adjacency the core relies on:
// the function-declaration opcode is 0, the three return opcodes immediately
// follow it, and each comparison family's label-declaration opcode is its
// compare opcode + 1.
const (
	FuncDecl Opcode = iota
	Return1         // "I'll be back" — exit(1)
	Return2         // "Nothing to see here, move along" — exit(0)
	Return3         // "It's a trap!" — exit(2)

	WhoWouldWin      // "Who would win?" — compare, two label-name parameters
	WhoWouldWinLabel // label declaration for the above, one parameter

	SamePictureCompare // "Corporate needs you to find the difference" — zero parameters
	SamePictureLabel   // "They're the same picture" — the one global label

	MovReg
	AddReg
	SubReg
	Increment
	Jump
	WriteChar
	ReadChar
	Breakpoint // ignorable; template is the literal string "int3"

	OrDraw25 // sentinel, always NumberOfCommands-2
	Invalid  // sentinel, always NumberOfCommands-1

	NumberOfCommands
)

func init() {
	if OrDraw25 != NumberOfCommands-2 {
		panic("command: OrDraw25 must be NumberOfCommands-2")
	}
	if Invalid != NumberOfCommands-1 {
		panic("command: Invalid must be NumberOfCommands-1")
	}
}

// TemplateFragment is one piece of a pre-tokenized translation template:
// either a literal run of characters or the index of a parameter to splice
// in. Pre-tokenizing at table-construction time means the translator never
// re-scans a template string per command (spec's Design Notes call this out
// explicitly).
type TemplateFragment struct {
	Literal    string
	IsParam    bool
	ParamIndex int
}

// TableEntry is one row of the static, opcode-indexed command table.
type TableEntry struct {
	Pattern           string
	UsedParameters    int
	AllowedParamTypes [2]uint8
	Template          string
	Fragments         []TemplateFragment
}

func tokenize(template string, usedParameters int) []TemplateFragment {
	var frags []TemplateFragment
	var lit []byte
	flush := func() {
		if len(lit) > 0 {
			frags = append(frags, TemplateFragment{Literal: string(lit)})
			lit = lit[:0]
		}
	}
	for i := 0; i < len(template); i++ {
		c := template[i]
		if c >= '0' && c < byte('0'+usedParameters) {
			flush()
			idx, _ := strconv.Atoi(string(c))
			frags = append(frags, TemplateFragment{IsParam: true, ParamIndex: idx})
			continue
		}
		lit = append(lit, c)
	}
	flush()
	return frags
}

func entry(pattern string, usedParameters int, template string) TableEntry {
	return TableEntry{
		Pattern:        pattern,
		UsedParameters: usedParameters,
		Template:       template,
		Fragments:      tokenize(template, usedParameters),
	}
}

// Table is the static, process-wide command table. Opcode N's translation
// rules live at Table[N]. It is built once at package init and never
// mutated; analyzers and the translator treat it as read-only input, the
// same way the command-parser/lexer supply it as data rather than code.
var Table = buildTable()

func buildTable() []TableEntry {
	t := make([]TableEntry, NumberOfCommands)

	t[FuncDecl] = entry("This is the beginning of a beautiful friendship", 1, "0:")
	t[Return1] = entry("I'll be back", 0, "mov edi, 1\n\tmov eax, 60\n\tsyscall")
	t[Return2] = entry("Nothing to see here, move along", 0, "mov rax, 60\n\tmov rdi, 0\n\tsyscall")
	t[Return3] = entry("It's a trap!", 0, "mov edi, 2\n\tmov eax, 60\n\tsyscall")

	t[WhoWouldWin] = entry("Who would win?", 2, "cmp rax, rbx\n\tje .L0\n\tjmp .L1")
	t[WhoWouldWinLabel] = entry("And their opponent", 1, ".L0:")

	t[SamePictureCompare] = entry("Corporate needs you to find the difference", 0, "jmp .Lsamepicture")
	t[SamePictureLabel] = entry("They're the same picture", 0, ".Lsamepicture:")

	t[MovReg] = entry("One does not simply walk into Mordor", 2, "mov 0, 1")
	t[AddReg] = entry("This is Sparta", 2, "add 0, 1")
	t[SubReg] = entry("Not today", 2, "sub 0, 1")
	t[Increment] = entry("Stonks", 1, "inc 0")
	t[Jump] = entry("To infinity and beyond", 1, "jmp 0")
	t[WriteChar] = entry("Say the line", 1, "mov byte ptr [rip + .LCharacter], 0\n\tcall writechar")
	t[ReadChar] = entry("Ok, I'm listening", 0, "call readchar")
	t[Breakpoint] = entry("Bonk", 0, "int3")

	t[OrDraw25] = entry("or draw 25", 0, "nop")
	t[Invalid] = entry("<invalid>", 0, "")

	return t
}
