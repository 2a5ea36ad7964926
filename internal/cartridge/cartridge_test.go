package cartridge

import "testing"

func makeROM(banks int, typeByte, romSizeByte, ramSizeByte uint8) []byte {
	rom := make([]byte, banks*0x4000)
	rom[0x147] = typeByte
	rom[0x148] = romSizeByte
	rom[0x149] = ramSizeByte
	// Stamp each bank with its own index at offset 0x10 so bank-switch
	// tests can tell banks apart.
	for b := 0; b < banks; b++ {
		rom[b*0x4000+0x10] = uint8(b)
	}
	return rom
}

func TestType0x19RoutesToMBC1(t *testing.T) {
	rom := makeROM(4, 0x19, 0x01, 0x00)
	c, err := New(rom)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.mbc.(*MBC1); !ok {
		t.Fatalf("cartridge type 0x19 must deviate to MBC1, got %T", c.mbc)
	}
}

func TestMBC1BankZeroRemap(t *testing.T) {
	rom := makeROM(64, 0x01, 0x05, 0x00)
	c, err := New(rom)
	if err != nil {
		t.Fatal(err)
	}
	// Select bank 0x20: high bits 01 through 0x4000-0x5FFF, low five bits
	// 00000 through 0x2000-0x3FFF; the 0x00/0x20/0x40/0x60 bank-zero
	// property should remap to 0x21.
	c.Write(0x4000, 0x01)
	c.Write(0x2000, 0x00)
	got := c.Read(0x4010)
	if got != 0x21 {
		t.Fatalf("selecting bank 0x20 should read back bank 0x21's stamp, got %d", got)
	}
}

func TestMBC1RAMEnableGate(t *testing.T) {
	rom := makeROM(4, 0x03, 0x01, 0x02)
	c, err := New(rom)
	if err != nil {
		t.Fatal(err)
	}
	c.Write(0xA000, 0x42) // RAM not yet enabled: dropped
	if c.Read(0xA000) == 0x42 {
		t.Fatalf("write to disabled external RAM should be dropped")
	}
	c.Write(0x0000, 0x0A) // enable RAM
	c.Write(0xA000, 0x42)
	if got := c.Read(0xA000); got != 0x42 {
		t.Fatalf("external RAM write after enable: got %02X, want 42", got)
	}
}

func TestBatteryFlagFromHeaderType(t *testing.T) {
	rom := makeROM(4, 0x03, 0x01, 0x02)
	c, _ := New(rom)
	if !c.HasBattery() {
		t.Fatalf("type 0x03 (MBC1+RAM+BATTERY) must report a battery")
	}
	if c.SaveRAM() == nil {
		t.Fatalf("battery-backed cartridge must return a RAM snapshot")
	}

	rom2 := makeROM(4, 0x01, 0x01, 0x00)
	c2, _ := New(rom2)
	if c2.HasBattery() {
		t.Fatalf("type 0x01 (MBC1, no battery) must not report a battery")
	}
	if c2.SaveRAM() != nil {
		t.Fatalf("non-battery cartridge must return no snapshot")
	}
}
