// Package mrp owns the receive path of the Multiple Registration Protocol.
//
// Ownership boundary:
// - frame validation (destination group address, EtherType, protocol version)
// - Message / AttributeList / VectorAttribute walking
// - three- and four-packed event codecs
// - staged event dispatch to a per-session observer
//
// The package is application agnostic: an Application supplies the group
// address, EtherType and attribute-type Registry. Registration state,
// timers and transmission belong to callers.
package mrp
