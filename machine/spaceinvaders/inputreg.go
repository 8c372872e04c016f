package spaceinvaders

// Input register bit assignments for port 1 and port 2, per the
// cabinet's documented wiring.
const (
	reg1Credit  uint8 = 1 << 0
	reg1Start2P uint8 = 1 << 1
	reg1Start1P uint8 = 1 << 2
	reg1ShootP1 uint8 = 1 << 4
	reg1LeftP1  uint8 = 1 << 5
	reg1RightP1 uint8 = 1 << 6

	reg2Tilt     uint8 = 1 << 2
	reg2ShootP2  uint8 = 1 << 4
	reg2LeftP2   uint8 = 1 << 5
	reg2RightP2  uint8 = 1 << 6
)

// inputReg holds the two cabinet input latches (coin slot, start
// buttons, joystick/fire per player, tilt switch).
type inputReg struct {
	reg1, reg2 uint8
}

func (r *inputReg) readReg1() uint8 { return r.reg1 }
func (r *inputReg) readReg2() uint8 { return r.reg2 }

func (r *inputReg) set(reg *uint8, bit uint8, down bool) {
	if down {
		*reg |= bit
	} else {
		*reg &^= bit
	}
}

func (r *inputReg) SetCredit(down bool)  { r.set(&r.reg1, reg1Credit, down) }
func (r *inputReg) SetStart2P(down bool) { r.set(&r.reg1, reg1Start2P, down) }
func (r *inputReg) SetStart1P(down bool) { r.set(&r.reg1, reg1Start1P, down) }
func (r *inputReg) SetShootP1(down bool) { r.set(&r.reg1, reg1ShootP1, down) }
func (r *inputReg) SetLeftP1(down bool)  { r.set(&r.reg1, reg1LeftP1, down) }
func (r *inputReg) SetRightP1(down bool) { r.set(&r.reg1, reg1RightP1, down) }

func (r *inputReg) SetTilt(down bool)    { r.set(&r.reg2, reg2Tilt, down) }
func (r *inputReg) SetShootP2(down bool) { r.set(&r.reg2, reg2ShootP2, down) }
func (r *inputReg) SetLeftP2(down bool)  { r.set(&r.reg2, reg2LeftP2, down) }
func (r *inputReg) SetRightP2(down bool) { r.set(&r.reg2, reg2RightP2, down) }
