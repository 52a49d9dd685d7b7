package app_info

// NAME name of application
const NAME = "probeherd"

// VERSION current version of application
const VERSION = "v0.1.0"
