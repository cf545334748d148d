package dx7

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func env(rates, levels [4]int) Envelope {
	return must(NewEnvelope(rates, levels))
}

// brass1 builds the first voice of the factory ROM1A cartridge.
func brass1() Voice {
	base := Operator{
		KeyboardLevelScaling: KeyboardLevelScaling{
			Breakpoint: must(NewKey(39)),
			Left:       Scaling{Depth: level(0), Curve: LinPos()},
			Right:      Scaling{Depth: level(0), Curve: LinPos()},
		},
		KeyVelocitySens: depth(2),
		Mode:            Ratio,
		Coarse:          must(NewCoarse(1)),
		Detune:          must(NewDetune(0)),
	}

	op6 := base
	op6.EG = env([4]int{49, 99, 28, 68}, [4]int{98, 98, 91, 0})
	op6.KeyboardLevelScaling.Left = Scaling{Depth: level(54), Curve: ExpNeg()}
	op6.KeyboardLevelScaling.Right = Scaling{Depth: level(50), Curve: ExpNeg()}
	op6.KeyboardRateScaling = depth(4)
	op6.OutputLevel = level(82)

	op5 := base
	op5.EG = env([4]int{77, 36, 41, 71}, [4]int{99, 98, 98, 0})
	op5.OutputLevel = level(98)
	op5.Detune = must(NewDetune(1))

	op4 := base
	op4.EG = op5.EG
	op4.OutputLevel = level(99)

	op3 := base
	op3.EG = env([4]int{77, 76, 82, 71}, [4]int{99, 98, 98, 0})
	op3.OutputLevel = level(99)
	op3.Detune = must(NewDetune(-2))

	op2 := base
	op2.EG = env([4]int{62, 51, 29, 71}, [4]int{82, 95, 96, 0})
	op2.KeyboardLevelScaling.Breakpoint = must(NewKey(27))
	op2.KeyboardLevelScaling.Right = Scaling{Depth: level(7), Curve: ExpNeg()}
	op2.KeyVelocitySens = depth(0)
	op2.OutputLevel = level(86)
	op2.Coarse = must(NewCoarse(0))
	op2.Detune = must(NewDetune(7))

	op1 := base
	op1.EG = env([4]int{72, 76, 99, 71}, [4]int{99, 88, 96, 0})
	op1.KeyboardLevelScaling.Right.Depth = level(14)
	op1.KeyVelocitySens = depth(0)
	op1.OutputLevel = level(98)
	op1.Coarse = must(NewCoarse(0))
	op1.Detune = must(NewDetune(7))

	return Voice{
		Operators:      [OperatorCount]Operator{op1, op2, op3, op4, op5, op6},
		PitchEnvelope:  env([4]int{84, 95, 95, 60}, [4]int{50, 50, 50, 50}),
		Algorithm:      must(NewAlgorithm(22)),
		Feedback:       depth(7),
		OscillatorSync: true,
		LFO: LFO{
			Speed:    level(37),
			PMD:      level(5),
			Sync:     false,
			Waveform: Sine,
		},
		PitchModSensitivity: depth(3),
		Transpose:           must(NewTranspose(0)),
		Name:                must(NewVoiceName("BRASS   1 ")),
	}
}

// brass1Packed is bytes [0,128) of the ROM1A factory cartridge.
var brass1Packed = []byte{
	0x31, 0x63, 0x1c, 0x44, 0x62, 0x62, 0x5b, 0x00, 0x27, 0x36, 0x32, 0x05, 0x3c, 0x08, 0x52, 0x02,
	0x00, 0x4d, 0x24, 0x29, 0x47, 0x63, 0x62, 0x62, 0x00, 0x27, 0x00, 0x00, 0x0f, 0x40, 0x08, 0x62,
	0x02, 0x00, 0x4d, 0x24, 0x29, 0x47, 0x63, 0x62, 0x62, 0x00, 0x27, 0x00, 0x00, 0x0f, 0x38, 0x08,
	0x63, 0x02, 0x00, 0x4d, 0x4c, 0x52, 0x47, 0x63, 0x62, 0x62, 0x00, 0x27, 0x00, 0x00, 0x0f, 0x28,
	0x08, 0x63, 0x02, 0x00, 0x3e, 0x33, 0x1d, 0x47, 0x52, 0x5f, 0x60, 0x00, 0x1b, 0x00, 0x07, 0x07,
	0x70, 0x00, 0x56, 0x00, 0x00, 0x48, 0x4c, 0x63, 0x47, 0x63, 0x58, 0x60, 0x00, 0x27, 0x00, 0x0e,
	0x0f, 0x70, 0x00, 0x62, 0x00, 0x00, 0x54, 0x5f, 0x5f, 0x3c, 0x32, 0x32, 0x32, 0x32, 0x15, 0x0f,
	0x25, 0x00, 0x05, 0x00, 0x38, 0x18, 0x42, 0x52, 0x41, 0x53, 0x53, 0x20, 0x20, 0x20, 0x31, 0x20,
}

// getFunky is a single voice dump in the unpacked format.
var getFunky = []byte{
	0x63, 0x63, 0x63, 0x63, 0x63, 0x63, 0x63, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x57, 0x00, 0x0b, 0x00, 0x07,
	0x63, 0x27, 0x63, 0x63, 0x63, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x07, 0x41, 0x00, 0x00, 0x00, 0x07,
	0x63, 0x27, 0x63, 0x63, 0x63, 0x00, 0x00, 0x00, 0x00, 0x00, 0x0a, 0x00, 0x00, 0x00, 0x00, 0x05, 0x58, 0x00, 0x08, 0x00, 0x07,
	0x63, 0x20, 0x63, 0x57, 0x63, 0x00, 0x00, 0x00, 0x00, 0x00, 0x11, 0x00, 0x00, 0x00, 0x00, 0x03, 0x47, 0x00, 0x03, 0x00, 0x07,
	0x63, 0x23, 0x63, 0x57, 0x63, 0x63, 0x63, 0x00, 0x00, 0x00, 0x11, 0x00, 0x00, 0x00, 0x00, 0x00, 0x5c, 0x00, 0x00, 0x00, 0x07,
	0x63, 0x43, 0x1e, 0x57, 0x63, 0x5f, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x04, 0x63, 0x00, 0x00, 0x00, 0x07,
	0x63, 0x63, 0x63, 0x63, 0x32, 0x32, 0x32, 0x32, 0x0f, 0x05, 0x01, 0x23, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x18,
	0x47, 0x45, 0x54, 0x20, 0x46, 0x55, 0x4e, 0x4b, 0x59, 0x20,
}
