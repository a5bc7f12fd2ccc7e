package v1

// BasePath is the route prefix of every versioned endpoint
const BasePath = "/v1"
