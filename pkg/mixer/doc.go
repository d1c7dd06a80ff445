// ABOUTME: Mix bus package connecting generator nodes to a master gain stage
// ABOUTME: Provides Bus, Node implementations and connection handles
// Package mixer sums generator layers into one stereo stream.
//
// Every layer is a Node connected to a Bus. Oscillator nodes carry a fixed
// pan and gain; buffer nodes loop a mono buffer into both channels through
// their own gain, which is how noise beds sit underneath other layers.
// The bus applies a master gain Param, automated against the bus clock:
//
//	bus := mixer.NewBus(48000, 1)
//	h := bus.Connect(mixer.NewOscillatorNode(528, 0, 1, 48000))
//	bus.Automate(func(master *synth.Param, now float64) {
//	    master.SetTargetAtTime(0.5, now, 0.1)
//	})
//	bus.Render(buf)
//	bus.Disconnect(h)
//
// The bus clock only advances as frames are rendered.
package mixer
