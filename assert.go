package halfedge

func assertTrue(cond bool) {
	if !cond {
		panic("halfedge: assertion error")
	}
}
