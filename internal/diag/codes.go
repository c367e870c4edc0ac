package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexBadEscape                Code = 1005

	// Синтаксические
	SynUnexpectedToken   Code = 2001
	SynExpectExpression  Code = 2002
	SynExpectIdentifier  Code = 2003
	SynExpectSemicolon   Code = 2004
	SynUnclosedDelimiter Code = 2005
	SynExpectType        Code = 2006

	// Разрешение имён по метаданным
	MetaUnknownType        Code = 3001
	MetaUnknownIdentifier  Code = 3002
	MetaUnknownMember      Code = 3003
	MetaNoMatchingOverload Code = 3004
	MetaTypeMismatch       Code = 3005
	MetaNotAssignable      Code = 3006
	MetaDuplicateParameter Code = 3007

	// Нормализация
	NormNotSupported Code = 4001

	// Ввод-вывод
	IOReadFailed Code = 5001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed number literal",
	LexBadEscape:                "Invalid escape sequence",
	SynUnexpectedToken:          "Unexpected token",
	SynExpectExpression:         "Expected expression",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectSemicolon:          "Expected ';'",
	SynUnclosedDelimiter:        "Unclosed delimiter",
	SynExpectType:               "Expected type",
	MetaUnknownType:             "Unknown type",
	MetaUnknownIdentifier:       "Unknown identifier",
	MetaUnknownMember:           "Unknown member",
	MetaNoMatchingOverload:      "No matching overload",
	MetaTypeMismatch:            "Type mismatch",
	MetaNotAssignable:           "Expression is not assignable",
	MetaDuplicateParameter:      "Duplicate parameter",
	NormNotSupported:            "Expression not supported",
	IOReadFailed:                "Failed to read input",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("META%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("NORM%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
