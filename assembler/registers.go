package assembler

import (
	"strconv"
	"strings"
)

// RegisterNameMap maps every accepted register spelling to its index.
// It is filled once in init and never written afterwards.
var RegisterNameMap = map[string]uint32{
	"zero": 0,
	"ra":   1,
	"sp":   2,
	"gp":   3,
	"tp":   4,
	"t0":   5,
	"t1":   6,
	"t2":   7,
	"s0":   8,
	"fp":   8,
	"s1":   9,
	"a0":   10,
	"a1":   11,
	"a2":   12,
	"a3":   13,
	"a4":   14,
	"a5":   15,
	"a6":   16,
	"a7":   17,
	"s2":   18,
	"s3":   19,
	"s4":   20,
	"s5":   21,
	"s6":   22,
	"s7":   23,
	"s8":   24,
	"s9":   25,
	"s10":  26,
	"s11":  27,
	"t3":   28,
	"t4":   29,
	"t5":   30,
	"t6":   31,
}

// abiNames is the canonical ABI name of each register, used by hover text.
var abiNames = [32]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

func init() {
	for i := 0; i < 32; i++ {
		RegisterNameMap["x"+strconv.Itoa(i)] = uint32(i)
	}
}

// LookupRegister resolves a register alias, case-insensitively.
func LookupRegister(name string) (uint32, bool) {
	reg, ok := RegisterNameMap[strings.ToLower(strings.TrimSpace(name))]
	return reg, ok
}

// ABIName returns the conventional name of register reg.
func ABIName(reg uint32) string {
	return abiNames[reg&0x1F]
}
