package cpu

// opExec holds the execution function for every known op.
var opExec = [OP_COUNT]func(cpu *Cpu, ins Instruction) error{
	OP_CLS:      opCls,
	OP_RET:      opRet,
	OP_JP:       opJp,
	OP_CALL:     opCall,
	OP_SE_IMM:   opSeImm,
	OP_SNE_IMM:  opSneImm,
	OP_SE_REG:   opSeReg,
	OP_LD_IMM:   opLdImm,
	OP_ADD_IMM:  opAddImm,
	OP_LD_REG:   opLdReg,
	OP_OR:       opOr,
	OP_AND:      opAnd,
	OP_XOR:      opXor,
	OP_ADD_REG:  opAddReg,
	OP_SUB:      opSub,
	OP_SHR:      opShr,
	OP_SUBN:     opSubn,
	OP_SHL:      opShl,
	OP_SNE_REG:  opSneReg,
	OP_LD_I:     opLdI,
	OP_JP_V0:    opJpV0,
	OP_RND:      opRnd,
	OP_DRW:      opDrw,
	OP_SKP:      opSkp,
	OP_SKNP:     opSknp,
	OP_LD_VX_DT: opLdVxDt,
	OP_LD_KEY:   opLdKey,
	OP_LD_DT_VX: opLdDtVx,
	OP_LD_ST_VX: opLdStVx,
	OP_ADD_I:    opAddI,
	OP_LD_F:     opLdF,
	OP_LD_B:     opLdB,
	OP_LD_STORE: opLdStore,
	OP_LD_LOAD:  opLdLoad,
}

// flag converts a condition to a VF value.
func flag(cond bool) uint8 {
	if cond {
		return 1
	}
	return 0
}

// 00E0
func opCls(cpu *Cpu, ins Instruction) error {
	cpu.Display.Clear()
	cpu.Redraw = true
	return nil
}

// 00EE
func opRet(cpu *Cpu, ins Instruction) (err error) {
	pc, err := cpu.Stack.Pop()
	if err != nil {
		return
	}
	cpu.Pc = pc
	return
}

// 1nnn
func opJp(cpu *Cpu, ins Instruction) error {
	cpu.Pc = ins.NNN()
	return nil
}

// 2nnn
func opCall(cpu *Cpu, ins Instruction) (err error) {
	err = cpu.Stack.Push(cpu.Pc)
	if err != nil {
		return
	}
	cpu.Pc = ins.NNN()
	return
}

// 3xnn
func opSeImm(cpu *Cpu, ins Instruction) error {
	cpu.skipIf(cpu.Register[ins.X()] == ins.NN())
	return nil
}

// 4xnn
func opSneImm(cpu *Cpu, ins Instruction) error {
	cpu.skipIf(cpu.Register[ins.X()] != ins.NN())
	return nil
}

// 5xy0
func opSeReg(cpu *Cpu, ins Instruction) error {
	cpu.skipIf(cpu.Register[ins.X()] == cpu.Register[ins.Y()])
	return nil
}

// 6xnn
func opLdImm(cpu *Cpu, ins Instruction) error {
	cpu.Register[ins.X()] = ins.NN()
	return nil
}

// 7xnn: wraps, VF untouched.
func opAddImm(cpu *Cpu, ins Instruction) error {
	cpu.Register[ins.X()] += ins.NN()
	return nil
}

// 8xy0
func opLdReg(cpu *Cpu, ins Instruction) error {
	cpu.Register[ins.X()] = cpu.Register[ins.Y()]
	return nil
}

// 8xy1
func opOr(cpu *Cpu, ins Instruction) error {
	cpu.Register[ins.X()] |= cpu.Register[ins.Y()]
	return nil
}

// 8xy2
func opAnd(cpu *Cpu, ins Instruction) error {
	cpu.Register[ins.X()] &= cpu.Register[ins.Y()]
	return nil
}

// 8xy3
func opXor(cpu *Cpu, ins Instruction) error {
	cpu.Register[ins.X()] ^= cpu.Register[ins.Y()]
	return nil
}

// The flag writes below come after the result so that VF holds the
// flag even when x is F.

// 8xy4
func opAddReg(cpu *Cpu, ins Instruction) error {
	sum := uint16(cpu.Register[ins.X()]) + uint16(cpu.Register[ins.Y()])
	cpu.Register[ins.X()] = uint8(sum)
	cpu.Register[REGISTER_FLAG] = flag(sum > 0xff)
	return nil
}

// 8xy5
func opSub(cpu *Cpu, ins Instruction) error {
	vx, vy := cpu.Register[ins.X()], cpu.Register[ins.Y()]
	cpu.Register[ins.X()] = vx - vy
	cpu.Register[REGISTER_FLAG] = flag(vy > vx)
	return nil
}

// 8xy6
func opShr(cpu *Cpu, ins Instruction) error {
	vx := cpu.Register[ins.X()]
	cpu.Register[ins.X()] = vx >> 1
	cpu.Register[REGISTER_FLAG] = vx & 0x1
	return nil
}

// 8xy7
func opSubn(cpu *Cpu, ins Instruction) error {
	vx, vy := cpu.Register[ins.X()], cpu.Register[ins.Y()]
	cpu.Register[ins.X()] = vy - vx
	cpu.Register[REGISTER_FLAG] = flag(vx > vy)
	return nil
}

// 8xyE
func opShl(cpu *Cpu, ins Instruction) error {
	vx := cpu.Register[ins.X()]
	cpu.Register[ins.X()] = vx << 1
	cpu.Register[REGISTER_FLAG] = vx >> 7
	return nil
}

// 9xy0
func opSneReg(cpu *Cpu, ins Instruction) error {
	cpu.skipIf(cpu.Register[ins.X()] != cpu.Register[ins.Y()])
	return nil
}

// Annn
func opLdI(cpu *Cpu, ins Instruction) error {
	cpu.I = ins.NNN()
	return nil
}

// Bnnn
func opJpV0(cpu *Cpu, ins Instruction) error {
	cpu.Pc = (ins.NNN() + uint16(cpu.Register[0])) & MEMORY_MASK
	return nil
}

// Cxnn
func opRnd(cpu *Cpu, ins Instruction) error {
	cpu.Register[ins.X()] = uint8(cpu.Rand.UintN(0x100)) & ins.NN()
	return nil
}

// Dxyn: VF is 1 on collision, else 0.
func opDrw(cpu *Cpu, ins Instruction) error {
	sprite := cpu.Memory.Slice(cpu.I, int(ins.N()))
	x, y := cpu.Register[ins.X()], cpu.Register[ins.Y()]
	collision := cpu.Display.Draw(x, y, sprite)
	cpu.Register[REGISTER_FLAG] = flag(collision)
	cpu.Redraw = true
	return nil
}

// Ex9E
func opSkp(cpu *Cpu, ins Instruction) error {
	cpu.skipIf(cpu.Keypad.Pressed(cpu.Register[ins.X()]))
	return nil
}

// ExA1
func opSknp(cpu *Cpu, ins Instruction) error {
	cpu.skipIf(!cpu.Keypad.Pressed(cpu.Register[ins.X()]))
	return nil
}

// Fx07
func opLdVxDt(cpu *Cpu, ins Instruction) error {
	cpu.Register[ins.X()] = cpu.Timers.Delay
	return nil
}

// Fx0A: while no key is down the instruction rewinds PC and runs again
// next tick. Timers keep counting in the driver meanwhile.
func opLdKey(cpu *Cpu, ins Instruction) error {
	key, pressed := cpu.Keypad.Lowest()
	cpu.Waiting = !pressed
	if cpu.Waiting {
		cpu.Pc = (cpu.Pc - 2) & MEMORY_MASK
	} else {
		cpu.Register[ins.X()] = key
	}
	return nil
}

// Fx15
func opLdDtVx(cpu *Cpu, ins Instruction) error {
	cpu.Timers.Delay = cpu.Register[ins.X()]
	return nil
}

// Fx18
func opLdStVx(cpu *Cpu, ins Instruction) error {
	cpu.Timers.Sound = cpu.Register[ins.X()]
	return nil
}

// Fx1E
func opAddI(cpu *Cpu, ins Instruction) error {
	cpu.I += uint16(cpu.Register[ins.X()])
	return nil
}

// Fx29
func opLdF(cpu *Cpu, ins Instruction) error {
	cpu.I = FontAddress(cpu.Register[ins.X()])
	return nil
}

// Fx33
func opLdB(cpu *Cpu, ins Instruction) error {
	vx := cpu.Register[ins.X()]
	cpu.Memory.Write(cpu.I, vx/100)
	cpu.Memory.Write(cpu.I+1, vx/10%10)
	cpu.Memory.Write(cpu.I+2, vx%10)
	return nil
}

// Fx55: I is left unchanged.
func opLdStore(cpu *Cpu, ins Instruction) error {
	for n := range ins.X() + 1 {
		cpu.Memory.Write(cpu.I+uint16(n), cpu.Register[n])
	}
	return nil
}

// Fx65: I is left unchanged.
func opLdLoad(cpu *Cpu, ins Instruction) error {
	for n := range ins.X() + 1 {
		cpu.Register[n] = cpu.Memory.Read(cpu.I + uint16(n))
	}
	return nil
}
