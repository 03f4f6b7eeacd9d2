package symbol

// Command enumerates every instruction. Not every command is exercised
// by every program — several exist purely as the contract surface
// pkg/cursor's dispatch switch must handle — but all are declared here
// so nothing in the instruction set is left unbuilt.
type Command int

const (
	// load/store
	LoadModule Command = iota
	LoadFast
	LoadSymbol
	LoadMember
	LoadOperator
	LoadConstant
	LoadVarSymbol
	LoadVarMember
	ReloadReference
	UnloadReference
	LoadExtraArguments
	ResetSymbol
	ResetFast

	// declarations
	DeclareFast
	DeclareSymbol
	DeclareFunction
	FunctionOverload

	// container construction
	AllocIterator
	AllocArray
	AllocHash
	InitIterator
	InitArray
	InitHash
	CreateLib

	// operators (one command, operand selects value.Operator)
	OpBinary
	OpUnary
	RegexMatch
	RegexUnmatch
	StrictEq
	StrictNe

	// control flow
	CaseJump
	JumpZero
	Jump
	SetRetrievePoint
	UnsetRetrievePoint
	Raise

	// packages
	OpenPackage
	ClosePackage
	RegisterClass

	// calls
	InitCall
	InitMemberCall
	InitOperatorCall
	InitVarMemberCall
	InitParam
	CaptureSymbol
	CaptureFast
	CaptureAs
	CaptureAll
	Call
	CallMember
	CallBuiltin
	ExitCall
	InitException
	ResetException

	// generators
	BeginGeneratorExpression
	EndGeneratorExpression
	YieldExpression
	Yield
	ExitGenerator
	YieldExitGenerator

	// printing
	OpenPrinter
	ClosePrinter
	Print

	// short-circuit
	OrPreCheck
	AndPreCheck

	// find-operator support / for-in
	FindDefinedSymbol
	FindDefinedMember
	CheckDefined
	FindInit
	FindNext
	FindCheck
	RangeInit
	RangeNext
	RangeCheck
	RangeIteratorCheck

	// exit
	ExitThread
	ExitExec
	ExitModule
)

// commandNames names every Command for the on-disk bytecode format
// (bytecode.go); namesToCommand is its inverse, built once in init.
var commandNames = map[Command]string{
	LoadModule: "load_module",
	LoadFast: "load_fast",
	LoadSymbol: "load_symbol",
	LoadMember: "load_member",
	LoadOperator: "load_operator",
	LoadConstant: "load_constant",
	LoadVarSymbol: "load_var_symbol",
	LoadVarMember: "load_var_member",
	ReloadReference: "reload_reference",
	UnloadReference: "unload_reference",
	LoadExtraArguments: "load_extra_arguments",
	ResetSymbol: "reset_symbol",
	ResetFast: "reset_fast",
	DeclareFast: "declare_fast",
	DeclareSymbol: "declare_symbol",
	DeclareFunction: "declare_function",
	FunctionOverload: "function_overload",
	AllocIterator: "alloc_iterator",
	AllocArray: "alloc_array",
	AllocHash: "alloc_hash",
	InitIterator: "init_iterator",
	InitArray: "init_array",
	InitHash: "init_hash",
	CreateLib: "create_lib",
	OpBinary: "op_binary",
	OpUnary: "op_unary",
	RegexMatch: "regex_match",
	RegexUnmatch: "regex_unmatch",
	StrictEq: "strict_eq",
	StrictNe: "strict_ne",
	CaseJump: "case_jump",
	JumpZero: "jump_zero",
	Jump: "jump",
	SetRetrievePoint: "set_retrieve_point",
	UnsetRetrievePoint: "unset_retrieve_point",
	Raise: "raise",
	OpenPackage: "open_package",
	ClosePackage: "close_package",
	RegisterClass: "register_class",
	InitCall: "init_call",
	InitMemberCall: "init_member_call",
	InitOperatorCall: "init_operator_call",
	InitVarMemberCall: "init_var_member_call",
	InitParam: "init_param",
	CaptureSymbol: "capture_symbol",
	CaptureFast: "capture_fast",
	CaptureAs: "capture_as",
	CaptureAll: "capture_all",
	Call: "call",
	CallMember: "call_member",
	CallBuiltin: "call_builtin",
	ExitCall: "exit_call",
	InitException: "init_exception",
	ResetException: "reset_exception",
	BeginGeneratorExpression: "begin_generator_expression",
	EndGeneratorExpression: "end_generator_expression",
	YieldExpression: "yield_expression",
	Yield: "yield",
	ExitGenerator: "exit_generator",
	YieldExitGenerator: "yield_exit_generator",
	OpenPrinter: "open_printer",
	ClosePrinter: "close_printer",
	Print: "print",
	OrPreCheck: "or_pre_check",
	AndPreCheck: "and_pre_check",
	FindDefinedSymbol: "find_defined_symbol",
	FindDefinedMember: "find_defined_member",
	CheckDefined: "check_defined",
	FindInit: "find_init",
	FindNext: "find_next",
	FindCheck: "find_check",
	RangeInit: "range_init",
	RangeNext: "range_next",
	RangeCheck: "range_check",
	RangeIteratorCheck: "range_iterator_check",
	ExitThread: "exit_thread",
	ExitExec: "exit_exec",
	ExitModule: "exit_module",
}

var namesToCommand = func() map[string]Command {
	m := make(map[string]Command, len(commandNames))
	for cmd, name := range commandNames {
		m[name] = cmd
	}
	return m
}()
