package vmem

// Flags is the §6.2 bit field controlling allocation policy and behavior.
type Flags uint32

const (
	// VMBootstrap is reserved for the bootstrap-time allocation path the
	// reference core uses internally (§4.1); this port's [Bootstrap] seeds
	// the pool directly and never needs callers to set it.
	VMBootstrap Flags = 1 << iota
	// VMInstantFit selects the instant-fit policy (§4.6): the default.
	VMInstantFit
	// VMBestFit selects the best-fit policy (§4.6): minimum-waste.
	VMBestFit
	// VMSleep is a reserved blocking-discipline bit; unused in this core
	// (§6.2).
	VMSleep
	// VMNoSleep is a reserved blocking-discipline bit; unused in this core
	// (§6.2).
	VMNoSleep
)

func (f Flags) policy() (Flags, error) {
	p := f & (VMInstantFit | VMBestFit)
	switch p {
	case 0:
		return VMInstantFit, nil
	case VMInstantFit, VMBestFit:
		return p, nil
	default:
		return 0, &InvalidArgumentError{Reason: "exactly one of VMInstantFit or VMBestFit must be set"}
	}
}
