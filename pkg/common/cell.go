package common

import "strings"

const (
	Width     = 9
	Height    = 7
	CellCount = Width * Height
)

const (
	CellNone   = -1
	ColumnNone = -1
)

func MakeCell(column, row int) int {
	return column*Height + row
}

func Column(cell int) int {
	return cell / Height
}

func Row(cell int) int {
	return cell % Height
}

func IsValidCell(cell int) bool {
	return cell >= 0 && cell < CellCount
}

func IsValidColumn(column int) bool {
	return column >= 0 && column < Width
}

const (
	columnNames = "abcdefghi"
	rowNames    = "1234567"
)

func CellName(cell int) string {
	if !IsValidCell(cell) {
		return "-"
	}
	var column = columnNames[Column(cell)]
	var row = rowNames[Row(cell)]
	return string(column) + string(row)
}

func ParseCell(s string) int {
	if len(s) != 2 {
		return CellNone
	}
	var column = strings.Index(columnNames, s[0:1])
	var row = strings.Index(rowNames, s[1:2])
	if column < 0 || row < 0 {
		return CellNone
	}
	return MakeCell(column, row)
}
