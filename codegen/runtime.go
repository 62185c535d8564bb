package codegen

import "github.com/Urethramancer/memeasm/target"

// writeRuntimeHelpers emits the writechar/readchar procedures that the
// WriteChar/ReadChar memes call into. They read and write a single byte
// through .LCharacter, using .Ltmp64 as scratch space for the platforms
// that need an out-parameter (Windows' *Bytes{Read,Written} pointer).
// Optimisation level o42069 elides everything but function prologues, so
// there is nothing for these helpers to be called from and they are
// skipped entirely.
func writeRuntimeHelpers(e *emitter, platform target.Platform, opt target.OptLevel) {
	if opt == target.O42069 {
		return
	}

	switch platform {
	case target.MacOS:
		writeSyscallHelpers(e, 0x2000004, 0x2000003)
	case target.Windows:
		writeWindowsHelpers(e)
	default:
		writeSyscallHelpers(e, 1, 0)
	}
}

func writeSyscallHelpers(e *emitter, writeSyscall, readSyscall int) {
	e.printf("writechar:\n"+
		"\tpush rcx\n\tpush r11\n\tpush rax\n\tpush rdi\n\tpush rsi\n\tpush rdx\n"+
		"\tmov rax, %d\n\tmov rdi, 1\n\tlea rsi, [rip + .LCharacter]\n\tmov rdx, 1\n\tsyscall\n"+
		"\tpop rdx\n\tpop rsi\n\tpop rdi\n\tpop rax\n\tpop r11\n\tpop rcx\n\tret\n", writeSyscall)

	e.printf("readchar:\n"+
		"\tpush rcx\n\tpush r11\n\tpush rax\n\tpush rdi\n\tpush rsi\n\tpush rdx\n"+
		"\tmov rax, %d\n\tmov rdi, 0\n\tlea rsi, [rip + .LCharacter]\n\tmov rdx, 1\n\tsyscall\n"+
		"\tpop rdx\n\tpop rsi\n\tpop rdi\n\tpop rax\n\tpop r11\n\tpop rcx\n\tret\n", readSyscall)
}

// writeWindowsHelpers adheres to the Microsoft x64 ABI: 32 bytes of shadow
// space before any call, integer arguments in rcx, rdx, r8, r9 and the rest
// on the stack.
func writeWindowsHelpers(e *emitter) {
	e.write("writechar:\n" +
		"\tsub rsp, 40\n" +
		"\tmov rcx, -11\n" +
		"\tcall GetStdHandle\n" +
		"\tmov rcx, rax\n" +
		"\tlea rdx, [rip + .LCharacter]\n" +
		"\tmov r8, 1\n" +
		"\tlea r9, [rip + .Ltmp64]\n" +
		"\tmov qword ptr [rsp + 32], 0\n" +
		"\tcall WriteFile\n" +
		"\tadd rsp, 40\n" +
		"\tret\n")

	e.write("readchar:\n" +
		"\tsub rsp, 40\n" +
		"\tmov rcx, -10\n" +
		"\tcall GetStdHandle\n" +
		"\tmov rcx, rax\n" +
		"\tlea rdx, [rip + .LCharacter]\n" +
		"\tmov r8, 1\n" +
		"\tlea r9, [rip + .Ltmp64]\n" +
		"\tmov qword ptr [rsp + 32], 0\n" +
		"\tcall ReadFile\n" +
		"\tadd rsp, 40\n" +
		"\tret\n")
}
