package services

// Services defined in this package:
// - ResourceService: create, update, read, list and delete resources along
//   with the files stored for them
